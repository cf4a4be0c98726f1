package usecase

import (
	"go.uber.org/fx"

	"github.com/modulixo/storefront/internal/config"
	"github.com/modulixo/storefront/internal/domain/repository"
	pkgAuth "github.com/modulixo/storefront/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewOrderUseCase,
	NewCatalogUseCase,
	NewContentUseCase,
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Config.ResetTokenTTL)
}
