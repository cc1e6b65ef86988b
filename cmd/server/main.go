// Command server runs the skill swap HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skillbarter/swap-api/internal/api"
	"github.com/skillbarter/swap-api/internal/api/handler"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/core/service"
	"github.com/skillbarter/swap-api/internal/infrastructure/config"
	"github.com/skillbarter/swap-api/internal/infrastructure/db/redis"
	"github.com/skillbarter/swap-api/internal/infrastructure/queue"
	"github.com/skillbarter/swap-api/internal/infrastructure/ws"
	"github.com/skillbarter/swap-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "swap-api",
	})

	if err := run(cfg); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config) error {
	appLog := logger.Get()
	ctx := context.Background()

	store, err := openStorage(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store.close(closeCtx)
	}()

	health := map[string]handler.Pinger{}
	if store.health != nil {
		health[cfg.StorageDriver] = store.health
	}

	// A nil interface disables caching in the services.
	var matchCache ports.MatchCache
	if cfg.Redis.Enabled {
		client, err := redis.Connect(ctx, redis.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLog.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, match cache disabled")
		} else {
			defer client.Close()
			matchCache = redis.NewMatchCache(client, cfg.Redis.CacheTTL)
			health["redis"] = handler.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			})
			appLog.Info().Str("addr", cfg.Redis.Addr).Msg("match cache enabled")
		}
	}

	hub := ws.NewHub(logger.Component("ws_hub"))
	defer hub.Close()

	processor := service.NewSwapEventProcessor(store.events, hub, logger.Component("swap_events"))
	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, processor, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	authSvc := service.NewAuthService(store.users, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth_service"))
	if cfg.Admin.Email != "" {
		if _, err := authSvc.EnsureAdmin(ctx, ports.RegisterInput{
			Name:     cfg.Admin.Name,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}); err != nil {
			stopWorkers()
			return err
		}
	}

	swapSvc := service.NewSwapService(store.swaps, store.skills, store.users, store.events, dispatcher, logger.Component("swap_service"))

	e := api.NewRouter(api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Auth:      authSvc,
		Users:     service.NewUserService(store.users),
		Skills:    service.NewSkillService(store.skills, store.users, matchCache, logger.Component("skill_service")),
		Match:     service.NewMatchService(store.skills, store.users, matchCache, logger.Component("match_service")),
		Swaps:     swapSvc,
		Admin:     service.NewAdminService(store.users, store.skills, store.swaps, matchCache, logger.Component("admin_service")),
		Hub:       hub,
		Health:    health,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("storage", cfg.StorageDriver).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		appLog.Info().Str("signal", sig.String()).Msg("shutting down server")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("server forced to shutdown")
	}

	// Handlers have returned, so no more events can be published.
	stopWorkers()
	dispatcher.Wait()

	appLog.Info().Msg("server exited")
	return runErr
}
