package repository

import (
	"context"

	"github.com/modulixo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create assigns the order number: the implementation reads the most recent
// order, derives the next sequential ORD-<n> value and persists order and
// items atomically. A duplicate number produced by a concurrent create must
// not survive; implementations retry behind a uniqueness constraint.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, number string, status model.OrderStatus) (model.OrderStatus, *model.Order, error)
}
