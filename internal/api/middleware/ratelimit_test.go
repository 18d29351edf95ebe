package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubAllower struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubAllower) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func limitRequest(t *testing.T, mw echo.MiddlewareFunc) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:4242"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRateLimit_Allowed(t *testing.T) {
	allower := &stubAllower{allow: true}
	mw := RateLimit(allower, zerolog.Nop())

	if err := limitRequest(t, mw); err != nil {
		t.Fatalf("allowed request should pass, got %v", err)
	}
	if len(allower.keys) != 1 || allower.keys[0] != "203.0.113.7" {
		t.Errorf("limiter keyed by %v, want client IP", allower.keys)
	}
}

func TestRateLimit_Exceeded(t *testing.T) {
	mw := RateLimit(&stubAllower{allow: false}, zerolog.Nop())

	err := limitRequest(t, mw)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("err = %v, want 429", err)
	}
}

func TestRateLimit_BackendFailureFailsOpen(t *testing.T) {
	mw := RateLimit(&stubAllower{err: errors.New("redis down")}, zerolog.Nop())

	if err := limitRequest(t, mw); err != nil {
		t.Fatalf("backend failure must fail open, got %v", err)
	}
}
