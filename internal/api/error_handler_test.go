package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"swap not found", fmt.Errorf("get: %w", domain.ErrSwapNotFound), http.StatusNotFound, "swap request not found"},
		{"skill not found", domain.ErrSkillNotFound, http.StatusNotFound, "skill not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"invalid transition", &domain.InvalidTransitionError{From: domain.SwapCompleted, To: domain.SwapAccepted},
			http.StatusUnprocessableEntity, "invalid state transition: from COMPLETED to ACCEPTED"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "swap was modified concurrently, reload and retry"},
		{"duplicate swap", domain.ErrDuplicateSwap, http.StatusConflict, "swap request already exists"},
		{"idempotency key reused", domain.ErrIdempotencyKeyUsed, http.StatusConflict, "idempotency key already used for another request"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"validation", domain.Invalid("state", "is required"), http.StatusBadRequest, "state: is required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"suspended", domain.ErrAccountSuspended, http.StatusForbidden, "account suspended"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
