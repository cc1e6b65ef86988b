package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name   string
		deps   map[string]Pinger
		code   int
		status string
	}{
		{"all healthy", map[string]Pinger{"mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]Pinger{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
		{"no dependencies", nil, http.StatusOK, "ok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tc.deps).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.status {
				t.Fatalf("expected %s, got %s", tc.status, resp.Status)
			}
			if tc.name == "redis down" && resp.Dependencies["redis"].Error != "connection refused" {
				t.Fatalf("expected redis error, got %+v", resp.Dependencies)
			}
		})
	}
}
