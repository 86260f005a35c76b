// Package tracker предоставляет маршруты для основного приложения.
package tracker

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/auth/current"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/auth/register"
	sprintcreate "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/sprint/create"
	sprintlist "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/sprint/list"
	sprintread "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/sprint/read"
	sprintremove "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/sprint/remove"
	sprintupdate "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/sprint/update"
	usagecreate "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/usage/create"
	usagelist "github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/usage/list"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/usage/projects"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/handlers/usage/summary"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/auth"
	sprintservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/sprint"
	usageservice "github.com/magabrotheeeer/ai-usage-tracker/internal/services/usage"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, allowedOrigins []string,
	authService *authservice.AuthService,
	usageService *usageservice.UsageService,
	sprintService *sprintservice.SprintService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/current", current.New(logger, authService).ServeHTTP)

			r.Get("/AIToolUsage", usagelist.New(logger, usageService).ServeHTTP)
			r.Post("/AIToolUsage", usagecreate.New(logger, usageService).ServeHTTP)
			r.Get("/AIToolUsage/summary", summary.New(logger, usageService).ServeHTTP)
			r.Get("/AIToolUsage/projects", projects.New(logger, usageService).ServeHTTP)

			r.Get("/sprints", sprintlist.New(logger, sprintService).ServeHTTP)
			r.Post("/sprints", sprintcreate.New(logger, sprintService).ServeHTTP)
			r.Get("/sprints/{id}", sprintread.New(logger, sprintService).ServeHTTP)
			r.Put("/sprints/{id}", sprintupdate.New(logger, sprintService).ServeHTTP)
			r.Delete("/sprints/{id}", sprintremove.New(logger, sprintService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
