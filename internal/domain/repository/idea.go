package repository

import (
	"context"

	"github.com/modulixo/storefront/internal/domain/model"
)

// IdeaRepository describes persistence operations for ideas.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) (*model.Idea, error)
	Update(ctx context.Context, idea *model.Idea) (*model.Idea, error)
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*model.Idea, error)
	List(ctx context.Context) ([]model.Idea, error)
}
