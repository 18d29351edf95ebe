package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type stubOrderService struct {
	created ports.CreateOrderInput
}

func (s *stubOrderService) List(ctx context.Context) ([]*domain.Order, error) { return nil, nil }
func (s *stubOrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}
func (s *stubOrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	s.created = input
	return &domain.Order{ID: "o1", Number: "CMD001", Status: domain.StatusRequested}, nil
}
func (s *stubOrderService) Update(ctx context.Context, id string, input ports.UpdateOrderInput) (*domain.Order, error) {
	return &domain.Order{ID: id, Status: input.Status}, nil
}
func (s *stubOrderService) Delete(ctx context.Context, id string) error { return nil }

func TestOrderHandler_Create(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	body := `{"client_id":"c1","items":[{"article_id":"a1","quantity":2,"unit_price":9.5}],"total":19}`
	c, rec := newTestContext(t, http.MethodPost, "/api/orders", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(svc.created.Items) != 1 || svc.created.Items[0].Quantity != 2 {
		t.Errorf("items = %+v", svc.created.Items)
	}
	if p := svc.created.Items[0].UnitPrice; p == nil || *p != 9.5 {
		t.Errorf("unit price = %v, want 9.5", p)
	}
}

func TestOrderHandler_CreateOmittedUnitPrice(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	body := `{"client_id":"c1","items":[{"article_id":"a1","quantity":1}]}`
	c, _ := newTestContext(t, http.MethodPost, "/api/orders", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Omitted price stays nil so the service can capture the catalogue price.
	if svc.created.Items[0].UnitPrice != nil {
		t.Errorf("unit price = %v, want nil", *svc.created.Items[0].UnitPrice)
	}
}

func TestOrderHandler_CreateRequiresItems(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	body := `{"client_id":"c1","items":[],"total":0}`
	c, _ := newTestContext(t, http.MethodPost, "/api/orders", body)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestOrderHandler_CreateRejectsUnknownStatus(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	body := `{"client_id":"c1","status":"teleported","items":[{"article_id":"a1","quantity":1}]}`
	c, _ := newTestContext(t, http.MethodPost, "/api/orders", body)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestOrderHandler_CreateRejectsZeroQuantity(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	body := `{"client_id":"c1","items":[{"article_id":"a1","quantity":0}]}`
	c, _ := newTestContext(t, http.MethodPost, "/api/orders", body)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}
