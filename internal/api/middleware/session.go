package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/ports"
	"github.com/minicrm/crm-api/internal/pkg/token"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// Context keys populated by Session for downstream handlers.
const (
	ContextUserKey = "user"
	ContextRoleKey = "role"
)

// Session authenticates the request from the session cookie. The token is
// verified, then the account is re-read so tokens issued before a deletion
// or deactivation stop working immediately. All failures collapse into a
// uniform 401.
func Session(tokens *token.Issuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			identity, err := tokens.Verify(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil || !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextRoleKey, user.Role)

			return next(c)
		}
	}
}
