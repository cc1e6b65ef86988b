package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/ports"
)

// SwapHandler exposes the swap lifecycle to participants.
type SwapHandler struct {
	service ports.SwapService
}

func NewSwapHandler(service ports.SwapService) *SwapHandler {
	return &SwapHandler{service: service}
}

// List handles GET /v1/swaps. Admins see every swap; other callers only
// the swaps they take part in.
//
// @Summary      List swaps
// @Tags         swaps
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Lifecycle state or ALL"
// @Success      200    {array}   swapDetailResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/swaps [get]
func (h *SwapHandler) List(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	details, err := h.service.List(c.Request().Context(), ports.ListSwapsInput{
		ActorID: a.ID,
		All:     a.isAdmin(),
		State:   c.QueryParam("state"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapDetailResponses(details, false))
}

// Create handles POST /v1/swaps. A repeated Idempotency-Key returns the
// original swap with 200 instead of creating a second one.
//
// @Summary      Propose a swap
// @Tags         swaps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createSwapRequest  true   "Swap proposal"
// @Success      201              {object}  swapResponse
// @Success      200              {object}  swapResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/swaps [post]
func (h *SwapHandler) Create(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createSwapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateSwapInput{
		ProposerID:     a.ID,
		UserBID:        req.UserBID,
		SkillAID:       req.SkillAID,
		SkillBID:       req.SkillBID,
		MatchScore:     req.MatchScore,
		Message:        req.Message,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toSwapResponse(result.Swap))
}

// Get handles GET /v1/swaps/:id.
//
// @Summary      Get a swap
// @Tags         swaps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Swap ID"
// @Success      200  {object}  swapResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/swaps/{id} [get]
func (h *SwapHandler) Get(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	swap, err := h.service.Get(c.Request().Context(), ports.SwapQuery{SwapID: c.Param("id"), ActorID: a.ID, ActorRole: a.Role})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapResponse(swap))
}

// Transition handles PATCH /v1/swaps/:id.
//
// @Summary      Move a swap to another lifecycle state
// @Tags         swaps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Swap ID"
// @Param        body  body      transitionRequest  true  "Target state"
// @Success      200   {object}  swapResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/swaps/{id} [patch]
func (h *SwapHandler) Transition(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	swap, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		SwapID:    c.Param("id"),
		Target:    req.State,
		ActorID:   a.ID,
		ActorRole: a.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapResponse(swap))
}

// Events handles GET /v1/swaps/:id/events.
//
// @Summary      Swap transition history
// @Tags         swaps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Swap ID"
// @Success      200  {array}   swapEventResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/swaps/{id}/events [get]
func (h *SwapHandler) Events(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	events, err := h.service.Events(c.Request().Context(), ports.SwapQuery{SwapID: c.Param("id"), ActorID: a.ID, ActorRole: a.Role})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSwapEventResponses(events))
}
