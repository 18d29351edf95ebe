package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// AddressInput holds a postal address.
type AddressInput struct {
	Street     string
	City       string
	PostalCode string
}

// ClientInput carries all writable client fields, used for both create and
// full-replace update.
type ClientInput struct {
	FirstName string
	LastName  string
	Company   string
	Email     string
	Phone     string
	Address   AddressInput
}

// ClientService defines CRM client use cases.
type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
