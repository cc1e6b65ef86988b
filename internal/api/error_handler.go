package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps a domain sentinel to its HTTP status. An empty message
// exposes the error text itself. Entries are matched in order, so the
// specific not-found sentinels precede ErrNotFound.
type errorStatus struct {
	target  error
	code    int
	message string
}

var errorStatuses = []errorStatus{
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrSkillNotFound, http.StatusNotFound, "skill not found"},
	{domain.ErrSwapNotFound, http.StatusNotFound, "swap request not found"},
	{domain.ErrNotFound, http.StatusNotFound, "not found"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, ""},
	{domain.ErrConflict, http.StatusConflict, "swap was modified concurrently, reload and retry"},
	{domain.ErrDuplicateSwap, http.StatusConflict, "swap request already exists"},
	{domain.ErrIdempotencyKeyUsed, http.StatusConflict, "idempotency key already used for another request"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrAccountSuspended, http.StatusForbidden, "account suspended"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
}

// NewHTTPErrorHandler renders every error returned by a handler as
// {"error": "..."}. Domain errors get their mapped status; anything unknown is
// logged and hidden behind a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, known := statusFor(err)
		if !known {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func statusFor(err error) (code int, msg string, known bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message), true
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error(), true
	}

	for _, s := range errorStatuses {
		if !errors.Is(err, s.target) {
			continue
		}
		if s.message == "" {
			return s.code, err.Error(), true
		}
		return s.code, s.message, true
	}
	return http.StatusInternalServerError, "internal server error", false
}
