// Package tracker собирает приложение целиком: хранилище, миграции, кеш,
// сервисы и HTTP-сервер с роутером.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/cache"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/config"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/auth"
	sprintservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/sprint"
	usageservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/usage"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	usageService := usageservice.NewUsageService(db, cacheRedis, logger)
	sprintService := sprintservice.NewSprintService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg.AllowedOrigins, authService, usageService, sprintService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  *cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
