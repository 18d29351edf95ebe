package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
	"github.com/minicrm/crm-api/internal/pkg/token"
)

// bcryptCost is tuned for interactive login-rate verification.
const bcryptCost = 12

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Issuer
}

func NewAuthService(users ports.UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a "user" role account and returns it with a fresh session
// token. The password is hashed before it ever reaches the repository.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, "", err
	}
	return created, signed, nil
}

// Login verifies the credentials and returns a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// normalizeEmail lowercases the address so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
