package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// SkillHandler handles the skill listing endpoints.
type SkillHandler struct {
	service ports.SkillService
}

func NewSkillHandler(service ports.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

// List handles GET /v1/skills.
//
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Owner filter"
// @Param        type     query     string  false  "OFFERED or NEEDED"
// @Success      200      {array}   skillResponse
// @Failure      400      {object}  errorResponse
// @Router       /v1/skills [get]
func (h *SkillHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	skills, err := h.service.List(c.Request().Context(), ports.SkillFilter{
		UserID: c.QueryParam("user_id"),
		Type:   domain.SkillType(strings.ToUpper(c.QueryParam("type"))),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSkillResponses(skills))
}

// Create handles POST /v1/skills. The listing is always owned by the caller.
//
// @Summary      Create a skill listing
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSkillRequest  true  "Skill details"
// @Success      201   {object}  skillResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/skills [post]
func (h *SkillHandler) Create(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skill, err := h.service.Create(c.Request().Context(), ports.CreateSkillInput{
		UserID:        a.ID,
		SkillName:     req.SkillName,
		SkillCategory: req.SkillCategory,
		SkillLevel:    req.SkillLevel,
		Type:          req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSkillResponse(*skill))
}

// Delete handles DELETE /v1/skills/:id.
//
// @Summary      Delete a skill listing
// @Tags         skills
// @Security     BearerAuth
// @Param        id   path  string  true  "Skill ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/skills/{id} [delete]
func (h *SkillHandler) Delete(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), a.ID, a.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
