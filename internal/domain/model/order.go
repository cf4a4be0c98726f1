package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single purchased line item. FileName/FileURL describe the
// deliverable attached to the item; items without a FileURL carry nothing to
// download.
type OrderItem struct {
	ID        int64
	ProductID *int64
	Quantity  int
	Price     float64
	FileName  string
	FileURL   string
}

// Deliverable reports whether the item carries a downloadable asset.
func (i OrderItem) Deliverable() bool {
	return i.FileURL != ""
}

// BillingAddress groups billing fields on an order.
type BillingAddress struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
}

// Order is a customer purchase record. Number is assigned exactly once at
// creation time and never changes afterwards.
type Order struct {
	ID             int64
	Number         string
	UserID         *int64
	Items          []OrderItem
	Total          float64
	Status         OrderStatus
	PaymentMethod  string
	OrderNotes     string
	BillingAddress BillingAddress
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Deliverables returns the items that carry a downloadable asset.
func (o *Order) Deliverables() []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.Deliverable() {
			items = append(items, item)
		}
	}
	return items
}
