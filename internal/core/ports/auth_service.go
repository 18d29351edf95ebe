package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// RegisterInput carries the fields needed to open a new account.
// Registration always produces a "user" role account; admins are created
// through the user management service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService defines registration and login use cases. Both return a signed
// session token alongside the account so handlers can set the session cookie.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
