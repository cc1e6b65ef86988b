package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/ports"
)

// AdminHandler serves the moderation dashboard. Routes are mounted behind
// RBAC(ADMIN).
type AdminHandler struct {
	admin ports.AdminService
	swaps ports.SwapService
}

func NewAdminHandler(admin ports.AdminService, swaps ports.SwapService) *AdminHandler {
	return &AdminHandler{admin: admin, swaps: swaps}
}

// Metrics handles GET /v1/admin/metrics.
//
// @Summary      Platform metrics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PlatformMetrics
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/metrics [get]
func (h *AdminHandler) Metrics(c echo.Context) error {
	m, err := h.admin.Metrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Users handles GET /v1/admin/users.
//
// @Summary      List users with optional skills
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        include_skills  query     bool  false  "Group each user's skills"
// @Success      200             {array}   adminUserResponse
// @Failure      403             {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	include := false
	if raw := c.QueryParam("include_skills"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "include_skills must be a boolean")
		}
		include = v
	}

	users, err := h.admin.Users(c.Request().Context(), include)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminUserResponses(users))
}

// SetUserActive handles PATCH /v1/admin/users/:id.
//
// @Summary      Suspend or activate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User ID"
// @Param        body  body      setActiveRequest  true  "New status"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id} [patch]
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.SetUserActive(c.Request().Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Swaps handles GET /v1/admin/swaps.
//
// @Summary      List all swaps
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Lifecycle state or ALL"
// @Success      200    {array}   swapDetailResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/admin/swaps [get]
func (h *AdminHandler) Swaps(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	details, err := h.swaps.List(c.Request().Context(), ports.ListSwapsInput{
		ActorID: a.ID,
		All:     true,
		State:   c.QueryParam("state"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapDetailResponses(details, true))
}

// Terminate handles POST /v1/admin/swaps/:id/terminate.
//
// @Summary      Force a swap to REJECTED
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Swap ID"
// @Success      200  {object}  swapResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/swaps/{id}/terminate [post]
func (h *AdminHandler) Terminate(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	swap, err := h.swaps.ForceTerminate(c.Request().Context(), c.Param("id"), a.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapResponse(swap))
}

// DeleteSwap handles DELETE /v1/admin/swaps/:id.
//
// @Summary      Delete a swap
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Swap ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/swaps/{id} [delete]
func (h *AdminHandler) DeleteSwap(c echo.Context) error {
	if err := h.swaps.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
