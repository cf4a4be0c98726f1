package repository

import (
	"context"
	"time"

	"github.com/modulixo/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, token string, passwordHash string) error
}
