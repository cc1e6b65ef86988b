package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrValidation):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrAccountSuspended):
			return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
