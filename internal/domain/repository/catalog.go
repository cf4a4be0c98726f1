package repository

import (
	"context"

	"github.com/modulixo/storefront/internal/domain/model"
)

// CategoryRepository describes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// ProductRepository describes persistence operations for products and their
// attached files.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

// OfferRepository describes persistence operations for special offers.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error)
	Update(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error)
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error)
	List(ctx context.Context) ([]model.SpecialOffer, error)
}
