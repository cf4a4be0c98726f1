package usecase

import (
	"context"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Place validates and persists a new order. The repository assigns the
// sequential order number; a failure there aborts the whole create.
func (u *OrderUseCase) Place(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusPending
	return u.orders.Create(ctx, order)
}

// GetByNumber returns a single order with its items.
func (u *OrderUseCase) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	return u.orders.GetByNumber(ctx, number)
}

// ListByUser returns orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateStatus persists a status change and reports whether the order just
// transitioned into completed. Re-saving an already completed order does not
// count as a transition.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) (*model.Order, bool, error) {
	if !status.Valid() {
		return nil, false, domainErrors.ErrInvalidStatus
	}

	previous, order, err := u.orders.UpdateStatus(ctx, number, status)
	if err != nil {
		return nil, false, err
	}

	completed := status == model.OrderStatusCompleted && previous != model.OrderStatusCompleted
	return order, completed, nil
}
