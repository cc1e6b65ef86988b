package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/ports"
)

type MatchHandler struct {
	service ports.MatchService
}

func NewMatchHandler(service ports.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

// List handles GET /v1/matches: the ranked two-way candidates for the caller.
//
// @Summary      Find swap matches
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MatchCandidate
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/matches [get]
func (h *MatchHandler) List(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	matches, err := h.service.FindMatches(c.Request().Context(), a.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}
