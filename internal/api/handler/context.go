package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/api/middleware"
	"github.com/minicrm/crm-api/internal/core/domain"
)

// currentUser extracts the account resolved by the Session middleware.
// Its absence means the middleware did not run — reject rather than guess.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
