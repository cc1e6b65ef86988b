package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/api/middleware"
	"github.com/skillbarter/swap-api/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func asUser(c echo.Context, id string) echo.Context {
	c.Set(middleware.KeyUserID, id)
	c.Set(middleware.KeyRole, domain.RoleUser)
	return c
}

func asAdmin(c echo.Context, id string) echo.Context {
	c.Set(middleware.KeyUserID, id)
	c.Set(middleware.KeyRole, domain.RoleAdmin)
	return c
}
