package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/pkg/token"
)

type stubUserFinder struct {
	users map[string]*domain.User
}

func (s *stubUserFinder) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}
func (s *stubUserFinder) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserFinder) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserFinder) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}
func (s *stubUserFinder) Delete(ctx context.Context, id string) error { return nil }

func (s *stubUserFinder) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func sessionRequest(t *testing.T, mw echo.MiddlewareFunc, cookie string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestSession_NoCookie(t *testing.T) {
	tokens := token.NewIssuer("secret", token.DefaultTTL)
	mw := Session(tokens, &stubUserFinder{})

	_, err := sessionRequest(t, mw, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestSession_TamperedToken(t *testing.T) {
	tokens := token.NewIssuer("secret", token.DefaultTTL)
	mw := Session(tokens, &stubUserFinder{})

	raw, err := tokens.Issue("u1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = sessionRequest(t, mw, raw+"x")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	expired := token.NewIssuer("secret", -time.Minute)
	raw, err := expired.Issue("u1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := Session(token.NewIssuer("secret", token.DefaultTTL), &stubUserFinder{
		users: map[string]*domain.User{"u1": {ID: "u1", IsActive: true}},
	})

	_, err = sessionRequest(t, mw, raw)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestSession_DeletedUser(t *testing.T) {
	tokens := token.NewIssuer("secret", token.DefaultTTL)
	raw, err := tokens.Issue("gone", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Valid signature but the account no longer exists.
	mw := Session(tokens, &stubUserFinder{})

	_, err = sessionRequest(t, mw, raw)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestSession_DeactivatedUser(t *testing.T) {
	tokens := token.NewIssuer("secret", token.DefaultTTL)
	raw, err := tokens.Issue("u1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := Session(tokens, &stubUserFinder{
		users: map[string]*domain.User{"u1": {ID: "u1", IsActive: false}},
	})

	_, err = sessionRequest(t, mw, raw)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestSession_ValidSetsContext(t *testing.T) {
	tokens := token.NewIssuer("secret", token.DefaultTTL)
	account := &domain.User{ID: "u1", Email: "a@b.c", Role: domain.RoleAdmin, IsActive: true}
	raw, err := tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := Session(tokens, &stubUserFinder{
		users: map[string]*domain.User{"u1": account},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: raw})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser *domain.User
	var gotRole string
	handler := mw(func(c echo.Context) error {
		gotUser, _ = c.Get(ContextUserKey).(*domain.User)
		gotRole, _ = c.Get(ContextRoleKey).(string)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if gotUser == nil || gotUser.ID != "u1" {
		t.Errorf("context user = %+v, want u1", gotUser)
	}
	if gotRole != domain.RoleAdmin {
		t.Errorf("context role = %q, want admin", gotRole)
	}
}
