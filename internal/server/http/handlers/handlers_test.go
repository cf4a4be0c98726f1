package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/server/http/dto"
	"github.com/modulixo/storefront/internal/server/http/middleware"
	testhelpers "github.com/modulixo/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, engine *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Next()
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	newEngine := func(stub testhelpers.AuthFacadeStub) *gin.Engine {
		engine := gin.New()
		engine.POST("/api/user/register", NewAuthHandler(stub).Register)
		return engine
	}
	body := dto.RegisterRequest{Email: "jane@example.com", Password: "secret"}

	t.Run("success sets auth cookie", func(t *testing.T) {
		rec := performJSON(t, newEngine(testhelpers.AuthFacadeStub{}), http.MethodPost, "/api/user/register", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Value != "token" {
			t.Fatalf("cookies = %v", cookies)
		}
		if got := rec.Header().Get("Authorization"); got != "Bearer token" {
			t.Fatalf("authorization header = %q", got)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		engine := newEngine(testhelpers.AuthFacadeStub{})
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		stub := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		stub := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/register", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("internal failure", func(t *testing.T) {
		stub := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/register", body)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	newEngine := func(stub testhelpers.AuthFacadeStub) *gin.Engine {
		engine := gin.New()
		engine.POST("/api/user/login", NewAuthHandler(stub).Login)
		return engine
	}
	body := dto.LoginRequest{Email: "jane@example.com", Password: "secret"}

	t.Run("success", func(t *testing.T) {
		rec := performJSON(t, newEngine(testhelpers.AuthFacadeStub{}), http.MethodPost, "/api/user/login", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if len(rec.Result().Cookies()) != 1 {
			t.Fatal("expected auth cookie")
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		stub := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/login", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestAuthHandlerPasswordRecovery(t *testing.T) {
	newEngine := func(stub testhelpers.AuthFacadeStub) *gin.Engine {
		engine := gin.New()
		handler := NewAuthHandler(stub)
		engine.POST("/api/user/forgot-password", handler.ForgotPassword)
		engine.POST("/api/user/reset-password", handler.ResetPassword)
		return engine
	}

	t.Run("forgot password accepts any known or unknown email", func(t *testing.T) {
		var requested string
		stub := testhelpers.AuthFacadeStub{ForgotFn: func(_ context.Context, email string) error {
			requested = email
			return nil
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/forgot-password", dto.ForgotPasswordRequest{Email: "ghost@example.com"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if requested != "ghost@example.com" {
			t.Fatalf("requested = %q", requested)
		}
	})

	t.Run("forgot password rejects empty email", func(t *testing.T) {
		rec := performJSON(t, newEngine(testhelpers.AuthFacadeStub{}), http.MethodPost, "/api/user/forgot-password", dto.ForgotPasswordRequest{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("reset password success", func(t *testing.T) {
		rec := performJSON(t, newEngine(testhelpers.AuthFacadeStub{}), http.MethodPost, "/api/user/reset-password", dto.ResetPasswordRequest{Token: "tok", Password: "new"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("reset password rejects stale token", func(t *testing.T) {
		stub := testhelpers.AuthFacadeStub{ResetFn: func(context.Context, string, string) error {
			return domainErrors.ErrInvalidResetToken
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/user/reset-password", dto.ResetPasswordRequest{Token: "tok", Password: "new"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("reset password rejects missing fields", func(t *testing.T) {
		rec := performJSON(t, newEngine(testhelpers.AuthFacadeStub{}), http.MethodPost, "/api/user/reset-password", dto.ResetPasswordRequest{Token: "tok"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestOrderHandlerCreate(t *testing.T) {
	productID := int64(7)
	body := dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: &productID, Quantity: 1, Price: 19.99, FileName: "lamp.stl", FileURL: "/files/lamp.stl"}},
		Total: 19.99,
	}

	t.Run("anonymous checkout", func(t *testing.T) {
		var placed *model.Order
		stub := testhelpers.OrderFacadeStub{PlaceFn: func(_ context.Context, order *model.Order) (*model.Order, error) {
			placed = order
			created := *order
			created.Number = "ORD-101"
			created.Status = model.OrderStatusPending
			return &created, nil
		}}
		engine := gin.New()
		engine.POST("/api/orders", NewOrderHandler(stub).Create)

		rec := performJSON(t, engine, http.MethodPost, "/api/orders", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if placed.UserID != nil {
			t.Fatalf("anonymous order got user %d", *placed.UserID)
		}

		var resp dto.OrderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Number != "ORD-101" || resp.Status != "pending" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("authenticated checkout attaches user", func(t *testing.T) {
		var placed *model.Order
		stub := testhelpers.OrderFacadeStub{PlaceFn: func(_ context.Context, order *model.Order) (*model.Order, error) {
			placed = order
			return order, nil
		}}
		engine := gin.New()
		engine.POST("/api/orders", asUser(42), NewOrderHandler(stub).Create)

		if rec := performJSON(t, engine, http.MethodPost, "/api/orders", body); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if placed.UserID == nil || *placed.UserID != 42 {
			t.Fatalf("order user = %v, want 42", placed.UserID)
		}
	})

	t.Run("empty order", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, *model.Order) (*model.Order, error) {
			return nil, domainErrors.ErrEmptyOrder
		}}
		engine := gin.New()
		engine.POST("/api/orders", NewOrderHandler(stub).Create)

		if rec := performJSON(t, engine, http.MethodPost, "/api/orders", dto.CreateOrderRequest{}); rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("number space exhausted", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, *model.Order) (*model.Order, error) {
			return nil, domainErrors.ErrNumberExhausted
		}}
		engine := gin.New()
		engine.POST("/api/orders", NewOrderHandler(stub).Create)

		if rec := performJSON(t, engine, http.MethodPost, "/api/orders", body); rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestOrderHandlerGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{GetFn: func(_ context.Context, number string) (*model.Order, error) {
			return &model.Order{Number: number, Status: model.OrderStatusCompleted}, nil
		}}
		engine := gin.New()
		engine.GET("/api/orders/:number", NewOrderHandler(stub).Get)

		rec := performJSON(t, engine, http.MethodGet, "/api/orders/ORD-105", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp dto.OrderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Number != "ORD-105" || resp.Status != "completed" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("unknown number", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{GetFn: func(context.Context, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		}}
		engine := gin.New()
		engine.GET("/api/orders/:number", NewOrderHandler(stub).Get)

		if rec := performJSON(t, engine, http.MethodGet, "/api/orders/ORD-999", nil); rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestOrderHandlerList(t *testing.T) {
	t.Run("returns orders for authenticated user", func(t *testing.T) {
		var requested int64
		stub := testhelpers.OrderFacadeStub{ListFn: func(_ context.Context, userID int64) ([]model.Order, error) {
			requested = userID
			return []model.Order{{Number: "ORD-101"}, {Number: "ORD-102"}}, nil
		}}
		engine := gin.New()
		engine.GET("/api/user/orders", asUser(7), NewOrderHandler(stub).List)

		rec := performJSON(t, engine, http.MethodGet, "/api/user/orders", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if requested != 7 {
			t.Fatalf("requested user = %d, want 7", requested)
		}
		var resp []dto.OrderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("orders = %d, want 2", len(resp))
		}
	})

	t.Run("no orders yields no content", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{ListFn: func(context.Context, int64) ([]model.Order, error) {
			return nil, nil
		}}
		engine := gin.New()
		engine.GET("/api/user/orders", asUser(7), NewOrderHandler(stub).List)

		if rec := performJSON(t, engine, http.MethodGet, "/api/user/orders", nil); rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	newEngine := func(stub testhelpers.OrderFacadeStub) *gin.Engine {
		engine := gin.New()
		engine.PATCH("/api/orders/:number/status", NewOrderHandler(stub).UpdateStatus)
		return engine
	}

	t.Run("success", func(t *testing.T) {
		var call struct {
			number string
			status model.OrderStatus
		}
		stub := testhelpers.OrderFacadeStub{UpdateStatusFn: func(_ context.Context, number string, status model.OrderStatus) (*model.Order, error) {
			call.number, call.status = number, status
			return &model.Order{Number: number, Status: status}, nil
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPatch, "/api/orders/ORD-105/status", dto.UpdateOrderStatusRequest{Status: "completed"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if call.number != "ORD-105" || call.status != model.OrderStatusCompleted {
			t.Fatalf("call = %+v", call)
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, string, model.OrderStatus) (*model.Order, error) {
			return nil, domainErrors.ErrInvalidStatus
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPatch, "/api/orders/ORD-105/status", dto.UpdateOrderStatusRequest{Status: "shipped"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		stub := testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, string, model.OrderStatus) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		}}
		rec := performJSON(t, newEngine(stub), http.MethodPatch, "/api/orders/ORD-999/status", dto.UpdateOrderStatusRequest{Status: "completed"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCatalogHandlerCategories(t *testing.T) {
	newEngine := func(stub *testhelpers.CatalogFacadeStub) *gin.Engine {
		engine := gin.New()
		handler := NewCatalogHandler(stub)
		engine.GET("/api/categories", handler.ListCategories)
		engine.GET("/api/categories/:slug", handler.GetCategory)
		engine.POST("/api/categories", handler.CreateCategory)
		engine.PUT("/api/categories/:id", handler.UpdateCategory)
		engine.DELETE("/api/categories/:id", handler.DeleteCategory)
		return engine
	}

	t.Run("create and fetch by slug", func(t *testing.T) {
		stub := &testhelpers.CatalogFacadeStub{}
		engine := newEngine(stub)

		rec := performJSON(t, engine, http.MethodPost, "/api/categories", dto.CategoryPayload{Title: "Home Decor"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
		var created dto.CategoryPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode created: %v", err)
		}
		if created.ID == 0 {
			t.Fatal("expected assigned id")
		}

		stub.CategoryRepo.Items[0].Slug = "home-decor"
		rec = performJSON(t, engine, http.MethodGet, "/api/categories/home-decor", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get status = %d", rec.Code)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		stub := &testhelpers.CatalogFacadeStub{}
		stub.CategoryRepo.Err = domainErrors.ErrEmptyTitle
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/categories", dto.CategoryPayload{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		stub := &testhelpers.CatalogFacadeStub{}
		stub.CategoryRepo.Err = domainErrors.ErrAlreadyExists
		rec := performJSON(t, newEngine(stub), http.MethodPost, "/api/categories", dto.CategoryPayload{Title: "Home Decor"})
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		rec := performJSON(t, newEngine(&testhelpers.CatalogFacadeStub{}), http.MethodGet, "/api/categories/missing", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := performJSON(t, newEngine(&testhelpers.CatalogFacadeStub{}), http.MethodDelete, "/api/categories/abc", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("delete unknown id", func(t *testing.T) {
		rec := performJSON(t, newEngine(&testhelpers.CatalogFacadeStub{}), http.MethodDelete, "/api/categories/99", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCatalogHandlerProducts(t *testing.T) {
	stub := &testhelpers.CatalogFacadeStub{}
	engine := gin.New()
	handler := NewCatalogHandler(stub)
	engine.GET("/api/products", handler.ListProducts)
	engine.POST("/api/products", handler.CreateProduct)
	engine.PUT("/api/products/:id", handler.UpdateProduct)

	body := dto.ProductPayload{
		Title: "Chess Set",
		Price: 49.99,
		Files: []dto.ProductFilePayload{{Name: "board.stl", URL: "/files/board.stl"}},
	}
	rec := performJSON(t, engine, http.MethodPost, "/api/products", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created dto.ProductPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if len(created.Files) != 1 || created.Files[0].Name != "board.stl" {
		t.Fatalf("files = %+v", created.Files)
	}

	created.Title = "Chess Set Deluxe"
	rec = performJSON(t, engine, http.MethodPut, "/api/products/1", created)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = performJSON(t, engine, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []dto.ProductPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Chess Set Deluxe" {
		t.Fatalf("list = %+v", listed)
	}
}

func TestIdeaHandler(t *testing.T) {
	newEngine := func(stub *testhelpers.ContentFacadeStub) *gin.Engine {
		engine := gin.New()
		handler := NewIdeaHandler(stub)
		engine.GET("/api/ideas", handler.List)
		engine.GET("/api/ideas/:slug", handler.Get)
		engine.POST("/api/ideas", handler.Create)
		engine.PUT("/api/ideas/:id", handler.Update)
		engine.DELETE("/api/ideas/:id", handler.Delete)
		return engine
	}

	t.Run("create update delete lifecycle", func(t *testing.T) {
		stub := &testhelpers.ContentFacadeStub{}
		engine := newEngine(stub)

		rec := performJSON(t, engine, http.MethodPost, "/api/ideas", dto.IdeaPayload{Title: "Printing Tips"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
		var created dto.IdeaPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode created: %v", err)
		}

		created.Title = "Advanced Printing Tips"
		if rec = performJSON(t, engine, http.MethodPut, "/api/ideas/1", created); rec.Code != http.StatusOK {
			t.Fatalf("update status = %d", rec.Code)
		}
		if rec = performJSON(t, engine, http.MethodDelete, "/api/ideas/1", nil); rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		rec := performJSON(t, newEngine(&testhelpers.ContentFacadeStub{}), http.MethodGet, "/api/ideas/missing", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestCatalogHandlerOffers(t *testing.T) {
	stub := &testhelpers.CatalogFacadeStub{}
	engine := gin.New()
	handler := NewCatalogHandler(stub)
	engine.POST("/api/special-offers", handler.CreateOffer)
	engine.DELETE("/api/special-offers/:id", handler.DeleteOffer)

	body := dto.OfferPayload{Title: "Starter Bundle", TotalPrice: 100, DiscountedPrice: 80, ProductIDs: []int64{1, 2}}
	rec := performJSON(t, engine, http.MethodPost, "/api/special-offers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created dto.OfferPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if len(created.ProductIDs) != 2 {
		t.Fatalf("product ids = %v", created.ProductIDs)
	}

	rec = performJSON(t, engine, http.MethodDelete, "/api/special-offers/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}
