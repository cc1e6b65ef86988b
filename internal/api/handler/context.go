package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/api/middleware"
	"github.com/skillbarter/swap-api/internal/core/domain"
)

// actor is the authenticated caller as seen by the handlers.
type actor struct {
	ID    string
	Role  string
	Email string
}

func (a actor) isAdmin() bool { return a.Role == domain.RoleAdmin }

// ctxActor extracts the auth claims injected by the Auth middleware and
// fails fast with 401 when the middleware did not run.
func ctxActor(c echo.Context) (actor, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	role, _ := c.Get(middleware.KeyRole).(string)
	if id == "" || role == "" {
		return actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ := c.Get(middleware.KeyEmail).(string)
	return actor{ID: id, Role: role, Email: email}, nil
}
