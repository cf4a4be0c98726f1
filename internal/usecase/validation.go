package usecase

import (
	"fmt"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
)

// ValidateOrder checks an incoming order payload before persistence.
// Quantities default to one when omitted.
func ValidateOrder(order *model.Order) error {
	if order == nil || len(order.Items) == 0 {
		return domainErrors.ErrEmptyOrder
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity < 0 {
			return fmt.Errorf("item %d: negative quantity", i)
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: negative price", i)
		}
	}

	if order.Total < 0 {
		return fmt.Errorf("negative order total")
	}
	return nil
}
