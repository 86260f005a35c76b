// Package read реализует HTTP-обработчик получения спринта по идентификатору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения спринта.
type Service interface {
	Read(ctx context.Context, userUID, sprintUID string) (*models.Sprint, error)
}

// Handler обрабатывает запросы на получение спринта по идентификатору.
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
	const op = "handlers.sprint.read"

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

	sprintUID := chi.URLParam(r, "id")
	if sprintUID == "" {
		log.Error("failed to decode id from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	sprint, err := h.service.Read(r.Context(), userUID, sprintUID)
	if err != nil {
		if errors.Is(err, repository.ErrSprintNotFound) {
			log.Error("sprint not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("sprint not found"))
			return
		}
		log.Error("failed to read sprint", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read sprint"))
		return
	}

	log.Info("sprint read", slog.String("uid", sprint.UID))
	render.JSON(w, r, response.StatusOKWithData(models.SprintDTO{
		ID:        sprint.UID,
		Name:      sprint.Name,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		Status:    sprint.Status,
		CreatedAt: sprint.CreatedAt,
		UpdatedAt: sprint.UpdatedAt,
	}))
}
