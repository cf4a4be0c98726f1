package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
	pkgAuth "github.com/modulixo/storefront/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	resetTTL time.Duration
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, resetTTL time.Duration) *AuthUseCase {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, resetTTL: resetTTL}
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if !validEmail(email) || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         model.RoleCustomer,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID and role from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, model.Role, error) {
	if token == "" {
		return 0, "", pkgAuth.ErrInvalidToken
	}
	id, role, err := u.tokens.ParseToken(token)
	if err != nil {
		return 0, "", err
	}
	return id, model.Role(role), nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// RequestPasswordReset issues a single-use reset token for the account.
// Returns ErrNotFound when no account matches; callers decide whether to
// surface that to the client.
func (u *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", domainErrors.ErrNotFound
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token := uuid.NewString()
	if err := u.users.SetResetToken(ctx, usr.ID, token, time.Now().Add(u.resetTTL)); err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (u *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domainErrors.ErrInvalidResetToken
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	return u.users.ConsumeResetToken(ctx, token, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
