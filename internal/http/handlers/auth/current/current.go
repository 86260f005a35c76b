// Package current реализует HTTP-обработчик получения данных текущего пользователя
// по uid из контекста, заполненного JWT middleware.
package current

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики получения пользователя по uid.
type Service interface {
	CurrentUser(ctx context.Context, userUID string) (*models.User, error)
}

// Handler обрабатывает запросы на получение текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("useruid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to get current user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get current user"))
		return
	}

	log.Info("current user resolved", slog.String("useruid", user.UUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       user.UUID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
	}))
}
