package usecase

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
)

// CatalogUseCase manages categories, products and special offers.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	offers     repository.OfferRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository, offers repository.OfferRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, products: products, offers: offers}
}

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	return slug.Make(title)
}

// --- categories ---

func (u *CatalogUseCase) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if strings.TrimSpace(category.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	category.Slug = Slugify(category.Title)
	return u.categories.Create(ctx, category)
}

func (u *CatalogUseCase) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if strings.TrimSpace(category.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	category.Slug = Slugify(category.Title)
	return u.categories.Update(ctx, category)
}

func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}

func (u *CatalogUseCase) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return u.categories.GetBySlug(ctx, slug)
}

func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// --- products ---

func (u *CatalogUseCase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if strings.TrimSpace(product.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	product.Slug = Slugify(product.Title)
	return u.products.Create(ctx, product)
}

func (u *CatalogUseCase) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if strings.TrimSpace(product.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	product.Slug = Slugify(product.Title)
	return u.products.Update(ctx, product)
}

func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

func (u *CatalogUseCase) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return u.products.GetBySlug(ctx, slug)
}

func (u *CatalogUseCase) Products(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// --- special offers ---

func (u *CatalogUseCase) CreateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	if strings.TrimSpace(offer.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	offer.Slug = Slugify(offer.Title)
	return u.offers.Create(ctx, offer)
}

func (u *CatalogUseCase) UpdateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	if strings.TrimSpace(offer.Title) == "" {
		return nil, domainErrors.ErrEmptyTitle
	}
	offer.Slug = Slugify(offer.Title)
	return u.offers.Update(ctx, offer)
}

func (u *CatalogUseCase) DeleteOffer(ctx context.Context, id int64) error {
	return u.offers.Delete(ctx, id)
}

func (u *CatalogUseCase) OfferBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error) {
	return u.offers.GetBySlug(ctx, slug)
}

func (u *CatalogUseCase) Offers(ctx context.Context) ([]model.SpecialOffer, error) {
	return u.offers.List(ctx)
}
