package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders. Checkout is open to anonymous callers;
// authenticated requests get the order attached to their account.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order := toOrderModel(req)
	if userID := CurrentUserID(c); userID != 0 {
		order.UserID = &userID
	}

	created, err := h.facade.PlaceOrder(c.Request.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNumberExhausted):
			c.Status(http.StatusServiceUnavailable)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*created))
}

// Get handles GET /api/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	number := c.Param("number")
	order, err := h.facade.OrderByNumber(c.Request.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.OrdersForUser(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/orders/:number/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	number := c.Param("number")
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), number, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderModel(req dto.CreateOrderRequest) *model.Order {
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			FileName:  item.FileName,
			FileURL:   item.FileURL,
		})
	}
	return &model.Order{
		Items:         items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		OrderNotes:    req.OrderNotes,
		BillingAddress: model.BillingAddress{
			Address1: req.BillingAddress.Address1,
			Address2: req.BillingAddress.Address2,
			City:     req.BillingAddress.City,
			State:    req.BillingAddress.State,
			Zip:      req.BillingAddress.Zip,
			Country:  req.BillingAddress.Country,
		},
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			FileName:  item.FileName,
			FileURL:   item.FileURL,
		})
	}
	return dto.OrderResponse{
		Number:        order.Number,
		Status:        string(order.Status),
		Items:         items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		OrderNotes:    order.OrderNotes,
		BillingAddress: dto.BillingAddressPayload{
			Address1: order.BillingAddress.Address1,
			Address2: order.BillingAddress.Address2,
			City:     order.BillingAddress.City,
			State:    order.BillingAddress.State,
			Zip:      order.BillingAddress.Zip,
			Country:  order.BillingAddress.Country,
		},
		CreatedAt: order.CreatedAt,
	}
}
