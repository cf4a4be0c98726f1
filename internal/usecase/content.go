package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
)

// ContentUseCase manages editorial content (ideas).
type ContentUseCase struct {
	ideas repository.IdeaRepository
}

// NewContentUseCase constructs ContentUseCase.
func NewContentUseCase(ideas repository.IdeaRepository) *ContentUseCase {
	return &ContentUseCase{ideas: ideas}
}

func (u *ContentUseCase) CreateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	if strings.TrimSpace(idea.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	idea.Slug = Slugify(idea.Title)
	return u.ideas.Create(ctx, idea)
}

func (u *ContentUseCase) UpdateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	if strings.TrimSpace(idea.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	idea.Slug = Slugify(idea.Title)
	return u.ideas.Update(ctx, idea)
}

func (u *ContentUseCase) DeleteIdea(ctx context.Context, id int64) error {
	return u.ideas.Delete(ctx, id)
}

func (u *ContentUseCase) IdeaBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	return u.ideas.GetBySlug(ctx, slug)
}

func (u *ContentUseCase) Ideas(ctx context.Context) ([]model.Idea, error) {
	return u.ideas.List(ctx)
}
