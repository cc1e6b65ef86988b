package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RBAC admits callers whose token role is one of roles. It runs after Auth;
// a request that carries no subject is rejected as unauthenticated.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = true
	}
	denied := "requires role " + strings.Join(roles, " or ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(KeyUserID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}
			role, _ := c.Get(KeyRole).(string)
			if !allowed[strings.ToUpper(role)] {
				return echo.NewHTTPError(http.StatusForbidden, denied)
			}
			return next(c)
		}
	}
}
