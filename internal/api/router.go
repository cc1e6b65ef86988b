// Package api assembles the HTTP surface: middleware, error handling and
// every route of the service.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/skillbarter/swap-api/docs"
	"github.com/skillbarter/swap-api/internal/api/handler"
	"github.com/skillbarter/swap-api/internal/api/middleware"
	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// Dependencies are the services and infrastructure the router wires into
// handlers.
type Dependencies struct {
	JWTSecret string
	Logger    zerolog.Logger

	Auth   ports.AuthService
	Users  ports.UserService
	Skills ports.SkillService
	Match  ports.MatchService
	Swaps  ports.SwapService
	Admin  ports.AdminService

	Hub    handler.ConnectionRegistry
	Health map[string]handler.Pinger

	// Metrics receives the HTTP collectors and backs GET /metrics. Nil means
	// the default prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "skillswap",
		Registerer: registerer,
	}))

	authMiddleware := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(deps.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	users := handler.NewUserHandler(deps.Users)
	v1.GET("/users", users.List)
	v1.GET("/users/me", users.Me)
	v1.GET("/users/:id", users.Get)

	skills := handler.NewSkillHandler(deps.Skills)
	v1.GET("/skills", skills.List)
	v1.POST("/skills", skills.Create)
	v1.DELETE("/skills/:id", skills.Delete)

	v1.GET("/matches", handler.NewMatchHandler(deps.Match).List)

	swaps := handler.NewSwapHandler(deps.Swaps)
	v1.GET("/swaps", swaps.List)
	v1.POST("/swaps", swaps.Create)
	v1.GET("/swaps/:id", swaps.Get)
	v1.PATCH("/swaps/:id", swaps.Transition)
	v1.GET("/swaps/:id/events", swaps.Events)

	// Browsers cannot set headers on websocket upgrades.
	ws := handler.NewWSHandler(deps.Hub, deps.Logger)
	e.GET("/v1/ws", ws.Connect, middleware.QueryAuth(deps.JWTSecret))

	// --- Admin ---
	admin := handler.NewAdminHandler(deps.Admin, deps.Swaps)
	adm := v1.Group("/admin", adminOnly)
	adm.GET("/metrics", admin.Metrics)
	adm.GET("/users", admin.Users)
	adm.PATCH("/users/:id", admin.SetUserActive)
	adm.GET("/swaps", admin.Swaps)
	adm.POST("/swaps/:id/terminate", admin.Terminate)
	adm.DELETE("/swaps/:id", admin.DeleteSwap)

	return e
}

// requestLogger emits one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
