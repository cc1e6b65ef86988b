package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Me handles GET /v1/users/me.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), a.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
