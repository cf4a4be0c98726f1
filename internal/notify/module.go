package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/modulixo/storefront/internal/adapter/mail"
	"github.com/modulixo/storefront/internal/config"
	"github.com/modulixo/storefront/internal/domain/repository"
)

// Module exposes the notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Users  repository.UserRepository
	Sender mail.Sender
	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) *Notifier {
	return New(p.Users, p.Sender, Options{
		DefaultRecipient: p.Config.DefaultOrderEmail,
		PublicBaseURL:    p.Config.PublicBaseURL,
		StoreName:        p.Config.EmailFromName,
	}, p.Logger)
}
