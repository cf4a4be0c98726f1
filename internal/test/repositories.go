package test

import (
	"context"
	"time"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	ResetTokens map[string]int64
	ResetCalls  []ResetTokenCall
}

// ResetTokenCall records a SetResetToken invocation.
type ResetTokenCall struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:       make(map[string]*model.User),
		ByID:        make(map[int64]*model.User),
		ResetTokens: make(map[string]int64),
		Next:        1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	s.Next++
	s.Users[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetResetToken records the issued token.
func (s *UserRepositoryStub) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	if s.ResetTokens == nil {
		s.ResetTokens = make(map[string]int64)
	}
	s.ResetTokens[token] = userID
	s.ResetCalls = append(s.ResetCalls, ResetTokenCall{UserID: userID, Token: token, ExpiresAt: expiresAt})
	return nil
}

// ConsumeResetToken applies the new password hash when the token is known.
func (s *UserRepositoryStub) ConsumeResetToken(ctx context.Context, token string, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	userID, ok := s.ResetTokens[token]
	if !ok {
		return domainErrors.ErrInvalidResetToken
	}
	delete(s.ResetTokens, token)
	if user, found := s.ByID[userID]; found {
		user.PasswordHash = passwordHash
	}
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn  func(context.Context, string) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (model.OrderStatus, *model.Order, error)

	Created     []*model.Order
	Orders      []model.Order
	UpdateCalls []OrderStatusCall
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	Number string
	Status model.OrderStatus
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Created))
	created.Number = "ORD-101"
	return &created, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// UpdateStatus records update invocations and returns previous status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) (model.OrderStatus, *model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{Number: number, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, number, status)
	}
	for i := range s.Orders {
		if s.Orders[i].Number == number {
			previous := s.Orders[i].Status
			s.Orders[i].Status = status
			order := s.Orders[i]
			return previous, &order, nil
		}
	}
	return "", nil, domainErrors.ErrNotFound
}

// CategoryRepositoryStub keeps categories in a slice.
type CategoryRepositoryStub struct {
	Items []model.Category
	Err   error
	Next  int64
}

func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	stored := *category
	stored.ID = s.Next
	s.Items = append(s.Items, stored)
	return &stored, nil
}

func (s *CategoryRepositoryStub) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == category.ID {
			s.Items[i] = *category
			return category, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *CategoryRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].Slug == slug {
			item := s.Items[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// ProductRepositoryStub keeps products in a slice.
type ProductRepositoryStub struct {
	Items []model.Product
	Err   error
	Next  int64
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	stored := *product
	stored.ID = s.Next
	s.Items = append(s.Items, stored)
	return &stored, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == product.ID {
			s.Items[i] = *product
			return product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].Slug == slug {
			item := s.Items[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// IdeaRepositoryStub keeps ideas in a slice.
type IdeaRepositoryStub struct {
	Items []model.Idea
	Err   error
	Next  int64
}

func (s *IdeaRepositoryStub) Create(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	stored := *idea
	stored.ID = s.Next
	s.Items = append(s.Items, stored)
	return &stored, nil
}

func (s *IdeaRepositoryStub) Update(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == idea.ID {
			s.Items[i] = *idea
			return idea, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *IdeaRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *IdeaRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].Slug == slug {
			item := s.Items[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *IdeaRepositoryStub) List(ctx context.Context) ([]model.Idea, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// OfferRepositoryStub keeps special offers in a slice.
type OfferRepositoryStub struct {
	Items []model.SpecialOffer
	Err   error
	Next  int64
}

func (s *OfferRepositoryStub) Create(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	stored := *offer
	stored.ID = s.Next
	s.Items = append(s.Items, stored)
	return &stored, nil
}

func (s *OfferRepositoryStub) Update(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == offer.ID {
			s.Items[i] = *offer
			return offer, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OfferRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *OfferRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].Slug == slug {
			item := s.Items[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OfferRepositoryStub) List(ctx context.Context) ([]model.SpecialOffer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}
