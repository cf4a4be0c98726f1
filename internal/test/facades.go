package test

import (
	"context"
	"sync"

	"github.com/modulixo/storefront/internal/adapter/mail"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/worker"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, *model.Order) (*model.Order, error)
	GetFn          func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
}

// PlaceOrder delegates to provided function or echoes the order back with a
// number assigned.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, order)
	}
	created := *order
	created.Number = "ORD-101"
	created.Status = model.OrderStatusPending
	return &created, nil
}

// OrderByNumber returns a predefined order.
func (s OrderFacadeStub) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, number)
	}
	return &model.Order{Number: number, Status: model.OrderStatusPending}, nil
}

// OrdersForUser returns predefined orders for given user.
func (s OrderFacadeStub) OrdersForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Order{{Number: "ORD-101"}}, nil
}

// UpdateOrderStatus delegates to override or returns the updated order.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, number string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, number, status)
	}
	return &model.Order{Number: number, Status: status}, nil
}

// CatalogFacadeStub backs catalog endpoints with in-memory repositories.
type CatalogFacadeStub struct {
	CategoryRepo CategoryRepositoryStub
	ProductRepo  ProductRepositoryStub
	OfferRepo    OfferRepositoryStub
}

func (s *CatalogFacadeStub) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	return s.CategoryRepo.Create(ctx, category)
}

func (s *CatalogFacadeStub) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	return s.CategoryRepo.Update(ctx, category)
}

func (s *CatalogFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	return s.CategoryRepo.Delete(ctx, id)
}

func (s *CatalogFacadeStub) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.CategoryRepo.GetBySlug(ctx, slug)
}

func (s *CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	return s.CategoryRepo.List(ctx)
}

func (s *CatalogFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return s.ProductRepo.Create(ctx, product)
}

func (s *CatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return s.ProductRepo.Update(ctx, product)
}

func (s *CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	return s.ProductRepo.Delete(ctx, id)
}

func (s *CatalogFacadeStub) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.ProductRepo.GetBySlug(ctx, slug)
}

func (s *CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	return s.ProductRepo.List(ctx)
}

func (s *CatalogFacadeStub) CreateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	return s.OfferRepo.Create(ctx, offer)
}

func (s *CatalogFacadeStub) UpdateOffer(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	return s.OfferRepo.Update(ctx, offer)
}

func (s *CatalogFacadeStub) DeleteOffer(ctx context.Context, id int64) error {
	return s.OfferRepo.Delete(ctx, id)
}

func (s *CatalogFacadeStub) OfferBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error) {
	return s.OfferRepo.GetBySlug(ctx, slug)
}

func (s *CatalogFacadeStub) Offers(ctx context.Context) ([]model.SpecialOffer, error) {
	return s.OfferRepo.List(ctx)
}

// ContentFacadeStub backs idea endpoints with an in-memory repository.
type ContentFacadeStub struct {
	IdeaRepo IdeaRepositoryStub
}

func (s *ContentFacadeStub) CreateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	return s.IdeaRepo.Create(ctx, idea)
}

func (s *ContentFacadeStub) UpdateIdea(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	return s.IdeaRepo.Update(ctx, idea)
}

func (s *ContentFacadeStub) DeleteIdea(ctx context.Context, id int64) error {
	return s.IdeaRepo.Delete(ctx, id)
}

func (s *ContentFacadeStub) IdeaBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	return s.IdeaRepo.GetBySlug(ctx, slug)
}

func (s *ContentFacadeStub) Ideas(ctx context.Context) ([]model.Idea, error) {
	return s.IdeaRepo.List(ctx)
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CatalogFacadeStub
	ContentFacadeStub
}

// SenderStub records sent messages.
type SenderStub struct {
	mu       sync.Mutex
	Messages []mail.Message
	Err      error
}

// Send stores the message or returns the configured error.
func (s *SenderStub) Send(ctx context.Context, msg mail.Message) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a snapshot of recorded messages.
func (s *SenderStub) Sent() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mail.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// RevalidatorStub records cache invalidation calls.
type RevalidatorStub struct {
	mu    sync.Mutex
	Calls [][]string
	Err   error
}

// Invalidate stores invalidated tags.
func (s *RevalidatorStub) Invalidate(ctx context.Context, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, tags)
	return s.Err
}

// Invalidated returns a snapshot of recorded tag sets.
func (s *RevalidatorStub) Invalidated() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.Calls))
	copy(out, s.Calls)
	return out
}

// NotifierStub records notification requests.
type NotifierStub struct {
	mu        sync.Mutex
	Completed []*model.Order
	Resets    []string
	Err       error
}

// OrderCompleted records the order.
func (s *NotifierStub) OrderCompleted(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, order)
	return s.Err
}

// PasswordReset records the issued token.
func (s *NotifierStub) PasswordReset(ctx context.Context, user *model.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resets = append(s.Resets, token)
	return s.Err
}

// CompletedOrders returns a snapshot of recorded completions.
func (s *NotifierStub) CompletedOrders() []*model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Order, len(s.Completed))
	copy(out, s.Completed)
	return out
}

// QueueStub executes enqueued tasks synchronously, or drops them when Full.
type QueueStub struct {
	mu    sync.Mutex
	Tasks []worker.Task
	Full  bool
	Sync  bool
}

// Enqueue stores the task; with Sync set it runs the task immediately.
func (s *QueueStub) Enqueue(task worker.Task) bool {
	if s.Full {
		return false
	}
	s.mu.Lock()
	s.Tasks = append(s.Tasks, task)
	s.mu.Unlock()
	if s.Sync {
		_ = task.Run(context.Background())
	}
	return true
}

// Enqueued returns a snapshot of recorded tasks.
func (s *QueueStub) Enqueued() []worker.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]worker.Task, len(s.Tasks))
	copy(out, s.Tasks)
	return out
}
