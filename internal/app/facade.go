package app

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/usecase"
	"github.com/modulixo/storefront/internal/worker"
)

// OrderNotifier sends customer-facing emails.
type OrderNotifier interface {
	OrderCompleted(ctx context.Context, order *model.Order) error
	PasswordReset(ctx context.Context, user *model.User, token string) error
}

// Revalidator signals the front-end cache about content changes.
type Revalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// TaskQueue accepts background work decoupled from the request cycle.
type TaskQueue interface {
	Enqueue(task worker.Task) bool
}

// StorefrontFacade aggregates use cases and side-effect adapters behind a
// single application surface. Side effects (emails, revalidation) run on the
// background queue and never fail the triggering operation.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	catalog  *usecase.CatalogUseCase
	content  *usecase.ContentUseCase
	notifier OrderNotifier
	reval    Revalidator
	tasks    TaskQueue
	logger   *slog.Logger
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	catalog *usecase.CatalogUseCase,
	content *usecase.ContentUseCase,
	notifier OrderNotifier,
	reval Revalidator,
	tasks TaskQueue,
	logger *slog.Logger,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		orders:   orders,
		catalog:  catalog,
		content:  content,
		notifier: notifier,
		reval:    reval,
		tasks:    tasks,
		logger:   logger,
	}
}

// --- auth ---

func (f *StorefrontFacade) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password, firstName, lastName)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

// RequestPasswordReset issues a reset token and emails the link in the
// background. An unknown email is treated as success so the endpoint does not
// leak account existence.
func (f *StorefrontFacade) RequestPasswordReset(ctx context.Context, email string) error {
	user, token, err := f.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}

	f.enqueue("password-reset", func(taskCtx context.Context) error {
		return f.notifier.PasswordReset(taskCtx, user, token)
	})
	return nil
}

func (f *StorefrontFacade) ResetPassword(ctx context.Context, token, password string) error {
	return f.auth.ResetPassword(ctx, token, password)
}

// --- orders ---

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	return f.orders.Place(ctx, order)
}

func (f *StorefrontFacade) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}

func (f *StorefrontFacade) OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

// UpdateOrderStatus persists the status change and, exactly on the transition
// into completed, schedules the download notification. The response never
// reflects notification problems.
func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus) (*model.Order, error) {
	order, completed, err := f.orders.UpdateStatus(ctx, number, status)
	if err != nil {
		return nil, err
	}

	if completed {
		f.enqueue("order-completed", func(taskCtx context.Context) error {
			return f.notifier.OrderCompleted(taskCtx, order)
		})
	}
	return order, nil
}

// --- catalog ---

func (f *StorefrontFacade) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, category)
}

func (f *StorefrontFacade) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	return f.catalog.UpdateCategory(ctx, category)
}

func (f *StorefrontFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *StorefrontFacade) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return f.catalog.CategoryBySlug(ctx, slug)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	created, err := f.catalog.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	f.revalidate("products")
	return created, nil
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	updated, err := f.catalog.UpdateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	f.revalidate("products")
	return updated, nil
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	if err := f.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	f.revalidate("products")
	return nil
}

func (f *StorefrontFacade) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return f.catalog.ProductBySlug(ctx, slug)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Products(ctx)
}

func (f *StorefrontFacade) CreateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	created, err := f.catalog.CreateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}
	f.revalidate("products")
	return created, nil
}

func (f *StorefrontFacade) UpdateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	updated, err := f.catalog.UpdateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}
	f.revalidate("products")
	return updated, nil
}

func (f *StorefrontFacade) DeleteOffer(ctx context.Context, id int64) error {
	if err := f.catalog.DeleteOffer(ctx, id); err != nil {
		return err
	}
	f.revalidate("products")
	return nil
}

func (f *StorefrontFacade) OfferBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error) {
	return f.catalog.OfferBySlug(ctx, slug)
}

func (f *StorefrontFacade) Offers(ctx context.Context) ([]model.SpecialOffer, error) {
	return f.catalog.Offers(ctx)
}

// --- content ---

func (f *StorefrontFacade) CreateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	created, err := f.content.CreateIdea(ctx, idea)
	if err != nil {
		return nil, err
	}
	f.revalidate("ideas")
	return created, nil
}

func (f *StorefrontFacade) UpdateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	updated, err := f.content.UpdateIdea(ctx, idea)
	if err != nil {
		return nil, err
	}
	f.revalidate("ideas")
	return updated, nil
}

func (f *StorefrontFacade) DeleteIdea(ctx context.Context, id int64) error {
	if err := f.content.DeleteIdea(ctx, id); err != nil {
		return err
	}
	f.revalidate("ideas")
	return nil
}

func (f *StorefrontFacade) IdeaBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	return f.content.IdeaBySlug(ctx, slug)
}

func (f *StorefrontFacade) Ideas(ctx context.Context) ([]model.Idea, error) {
	return f.content.Ideas(ctx)
}

// --- side-effect plumbing ---

func (f *StorefrontFacade) enqueue(name string, run func(ctx context.Context) error) {
	if !f.tasks.Enqueue(worker.Task{Name: name, Run: run}) {
		f.logger.Warn("background task rejected", slog.String("task", name))
	}
}

func (f *StorefrontFacade) revalidate(tags ...string) {
	f.enqueue("revalidate", func(taskCtx context.Context) error {
		return f.reval.Invalidate(taskCtx, tags...)
	})
}
