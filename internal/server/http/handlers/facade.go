package handlers

import (
	"context"

	"github.com/modulixo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, model.Role, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	OrderByNumber(ctx context.Context, number string) (*model.Order, error)
	OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus) (*model.Order, error)
}

// CatalogFacade provides category, product, and special-offer operations.
type CatalogFacade interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	Categories(ctx context.Context) ([]model.Category, error)

	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)

	CreateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error)
	UpdateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error)
	DeleteOffer(ctx context.Context, id int64) error
	OfferBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error)
	Offers(ctx context.Context) ([]model.SpecialOffer, error)
}

// ContentFacade provides editorial content operations.
type ContentFacade interface {
	CreateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error)
	UpdateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error)
	DeleteIdea(ctx context.Context, id int64) error
	IdeaBySlug(ctx context.Context, slug string) (*model.Idea, error)
	Ideas(ctx context.Context) ([]model.Idea, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	CatalogFacade
	ContentFacade
}
