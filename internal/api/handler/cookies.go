package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/api/middleware"
	"github.com/minicrm/crm-api/internal/pkg/token"
)

// setSessionCookie attaches the signed session token as an HTTP-only,
// SameSite=Strict cookie. Secure is enabled in production only, so local
// development over plain HTTP keeps working.
func setSessionCookie(c echo.Context, signed string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(token.DefaultTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
