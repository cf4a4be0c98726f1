package dto

import "time"

// OrderItemRequest is a line item of an incoming order.
type OrderItemRequest struct {
	ProductID *int64  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	FileName  string  `json:"fileName"`
	FileURL   string  `json:"fileUrl"`
}

// BillingAddressPayload mirrors billing fields on requests and responses.
type BillingAddressPayload struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	Items          []OrderItemRequest    `json:"items"`
	Total          float64               `json:"total"`
	PaymentMethod  string                `json:"paymentMethod"`
	OrderNotes     string                `json:"orderNotes,omitempty"`
	BillingAddress BillingAddressPayload `json:"billingAddress"`
}

// UpdateOrderStatusRequest carries the target lifecycle state.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is a line item of an order response.
type OrderItemResponse struct {
	ProductID *int64  `json:"productId,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	FileName  string  `json:"fileName,omitempty"`
	FileURL   string  `json:"fileUrl,omitempty"`
}

// OrderResponse describes an order returned to clients.
type OrderResponse struct {
	Number         string                `json:"number"`
	Status         string                `json:"status"`
	Items          []OrderItemResponse   `json:"items"`
	Total          float64               `json:"total"`
	PaymentMethod  string                `json:"paymentMethod,omitempty"`
	OrderNotes     string                `json:"orderNotes,omitempty"`
	BillingAddress BillingAddressPayload `json:"billingAddress"`
	CreatedAt      time.Time             `json:"createdAt"`
}
