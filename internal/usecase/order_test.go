package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/test"
)

func validOrder() *model.Order {
	return &model.Order{
		Total: 10,
		Items: []model.OrderItem{{Quantity: 1, Price: 10, FileURL: "/files/a.zip"}},
	}
}

func TestOrderUseCasePlace(t *testing.T) {
	t.Run("assigns pending status", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{}
		uc := NewOrderUseCase(repo)

		order := validOrder()
		order.Status = model.OrderStatusCompleted

		created, err := uc.Place(context.Background(), order)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if created.Number == "" {
			t.Fatal("expected assigned number")
		}
		if len(repo.Created) != 1 {
			t.Fatalf("create calls = %d, want 1", len(repo.Created))
		}
		if repo.Created[0].Status != model.OrderStatusPending {
			t.Fatalf("status = %q, want pending", repo.Created[0].Status)
		}
	})

	t.Run("empty order rejected", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{}
		uc := NewOrderUseCase(repo)

		_, err := uc.Place(context.Background(), &model.Order{})
		if !errors.Is(err, domainErrors.ErrEmptyOrder) {
			t.Fatalf("err = %v, want ErrEmptyOrder", err)
		}
		if len(repo.Created) != 0 {
			t.Fatal("repository must not be called")
		}
	})

	t.Run("repository failure aborts", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{
			CreateFn: func(context.Context, *model.Order) (*model.Order, error) {
				return nil, errors.New("allocation failed")
			},
		}
		uc := NewOrderUseCase(repo)

		if _, err := uc.Place(context.Background(), validOrder()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestValidateOrder(t *testing.T) {
	t.Run("nil order", func(t *testing.T) {
		if err := ValidateOrder(nil); !errors.Is(err, domainErrors.ErrEmptyOrder) {
			t.Fatalf("err = %v, want ErrEmptyOrder", err)
		}
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		order := &model.Order{Items: []model.OrderItem{{Price: 5}}}
		if err := ValidateOrder(order); err != nil {
			t.Fatalf("ValidateOrder: %v", err)
		}
		if order.Items[0].Quantity != 1 {
			t.Fatalf("quantity = %d, want 1", order.Items[0].Quantity)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		order := &model.Order{Items: []model.OrderItem{{Quantity: -1}}}
		if err := ValidateOrder(order); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		order := &model.Order{Items: []model.OrderItem{{Quantity: 1, Price: -2}}}
		if err := ValidateOrder(order); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("negative total", func(t *testing.T) {
		order := &model.Order{Total: -1, Items: []model.OrderItem{{Quantity: 1}}}
		if err := ValidateOrder(order); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{}
		uc := NewOrderUseCase(repo)

		_, _, err := uc.UpdateStatus(context.Background(), "ORD-101", "shipped")
		if !errors.Is(err, domainErrors.ErrInvalidStatus) {
			t.Fatalf("err = %v, want ErrInvalidStatus", err)
		}
		if len(repo.UpdateCalls) != 0 {
			t.Fatal("repository must not be called")
		}
	})

	t.Run("transition into completed", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{
			Orders: []model.Order{{Number: "ORD-101", Status: model.OrderStatusProcessing}},
		}
		uc := NewOrderUseCase(repo)

		order, completed, err := uc.UpdateStatus(context.Background(), "ORD-101", model.OrderStatusCompleted)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if !completed {
			t.Fatal("expected completed transition")
		}
		if order.Status != model.OrderStatusCompleted {
			t.Fatalf("status = %q, want completed", order.Status)
		}
	})

	t.Run("re-saving completed order is not a transition", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{
			Orders: []model.Order{{Number: "ORD-101", Status: model.OrderStatusCompleted}},
		}
		uc := NewOrderUseCase(repo)

		_, completed, err := uc.UpdateStatus(context.Background(), "ORD-101", model.OrderStatusCompleted)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if completed {
			t.Fatal("re-save must not count as transition")
		}
	})

	t.Run("other transitions are not completions", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{
			Orders: []model.Order{{Number: "ORD-101", Status: model.OrderStatusPending}},
		}
		uc := NewOrderUseCase(repo)

		_, completed, err := uc.UpdateStatus(context.Background(), "ORD-101", model.OrderStatusProcessing)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if completed {
			t.Fatal("unexpected completed transition")
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := &test.OrderRepositoryStub{}
		uc := NewOrderUseCase(repo)

		_, _, err := uc.UpdateStatus(context.Background(), "ORD-404", model.OrderStatusCompleted)
		if !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
