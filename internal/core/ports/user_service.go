package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// CreateUserInput carries the fields for admin-driven account creation.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// UpdateUserInput replaces an account. An empty Password leaves the stored
// hash untouched; a non-empty one is re-hashed before persistence.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	IsActive  bool
}

// UserService defines admin-only account management use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
