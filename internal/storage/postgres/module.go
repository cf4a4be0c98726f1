package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/modulixo/storefront/internal/config"
	"github.com/modulixo/storefront/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.CategoryRepository { return s.Categories() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.IdeaRepository { return s.Ideas() },
		func(s *Storage) repository.OfferRepository { return s.Offers() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
