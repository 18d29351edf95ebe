package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type stubClientService struct {
	created ports.ClientInput
}

func (s *stubClientService) List(ctx context.Context) ([]*domain.Client, error) { return nil, nil }
func (s *stubClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return nil, domain.ErrClientNotFound
}
func (s *stubClientService) Create(ctx context.Context, input ports.ClientInput) (*domain.Client, error) {
	s.created = input
	return &domain.Client{ID: "c1", Email: input.Email}, nil
}
func (s *stubClientService) Update(ctx context.Context, id string, input ports.ClientInput) (*domain.Client, error) {
	return nil, domain.ErrClientNotFound
}
func (s *stubClientService) Delete(ctx context.Context, id string) error { return nil }

const validClientBody = `{
	"firstname": "Grace",
	"lastname": "Hopper",
	"company": "Navy",
	"email": "grace@example.com",
	"phone": "0612345678",
	"address": {"street": "1 Dock Rd", "city": "Arlington", "postal_code": "22201"}
}`

func TestClientHandler_Create(t *testing.T) {
	svc := &stubClientService{}
	h := NewClientHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/clients", validClientBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.created.Phone != "0612345678" {
		t.Errorf("phone = %q", svc.created.Phone)
	}
	if svc.created.Address.City != "Arlington" {
		t.Errorf("address city = %q", svc.created.Address.City)
	}
}

func TestClientHandler_CreateRejectsBadPhone(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	for _, phone := range []string{"123", "06123456789", "06-12-34-56"} {
		body := strings.Replace(validClientBody, "0612345678", phone, 1)
		c, _ := newTestContext(t, http.MethodPost, "/api/clients", body)

		err := h.Create(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Errorf("phone %q: err = %v, want 400", phone, err)
		}
	}
}

func TestClientHandler_CreateRequiresAddress(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	body := `{"firstname":"Grace","lastname":"Hopper","email":"grace@example.com","phone":"0612345678","address":{}}`
	c, _ := newTestContext(t, http.MethodPost, "/api/clients", body)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestClientHandler_CompanyOptional(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	body := strings.Replace(validClientBody, `"company": "Navy",`, "", 1)
	c, rec := newTestContext(t, http.MethodPost, "/api/clients", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create without company: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}
