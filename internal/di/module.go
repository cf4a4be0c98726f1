package di

import (
	"go.uber.org/fx"

	"github.com/modulixo/storefront/internal/adapter/mail"
	"github.com/modulixo/storefront/internal/adapter/revalidate"
	"github.com/modulixo/storefront/internal/app"
	"github.com/modulixo/storefront/internal/config"
	"github.com/modulixo/storefront/internal/logger"
	"github.com/modulixo/storefront/internal/notify"
	"github.com/modulixo/storefront/internal/pkg/auth"
	"github.com/modulixo/storefront/internal/server/http/handlers"
	"github.com/modulixo/storefront/internal/server/http/router"
	"github.com/modulixo/storefront/internal/storage/postgres"
	"github.com/modulixo/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mail.Module,
		revalidate.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(n *notify.Notifier) app.OrderNotifier { return n },
			func(client revalidate.Client) app.Revalidator { return client },
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
