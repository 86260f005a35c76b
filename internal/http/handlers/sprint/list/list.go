// Package list реализует HTTP-обработчик выборки спринтов текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки спринтов.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Sprint, error)
}

// Handler обрабатывает запросы на получение списка спринтов.
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
	const op = "handlers.sprint.list"

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

	sprints, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list sprints", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list sprints"))
		return
	}

	dtos := make([]models.SprintDTO, 0, len(sprints))
	for _, sprint := range sprints {
		dtos = append(dtos, models.SprintDTO{
			ID:        sprint.UID,
			Name:      sprint.Name,
			StartDate: sprint.StartDate,
			EndDate:   sprint.EndDate,
			Status:    sprint.Status,
			CreatedAt: sprint.CreatedAt,
			UpdatedAt: sprint.UpdatedAt,
		})
	}

	log.Info("sprints listed", "count", len(dtos))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(dtos),
		"sprints":    dtos,
	}))
}
