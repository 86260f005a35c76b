// Package remove реализует HTTP-обработчик удаления спринта.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления спринта.
type Service interface {
	Remove(ctx context.Context, userUID, sprintUID string) (int, error)
}

// Handler обрабатывает запросы на удаление спринта.
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
	const op = "handlers.sprint.remove"

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

	rows, err := h.service.Remove(r.Context(), userUID, sprintUID)
	if err != nil {
		log.Error("failed to remove sprint", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove sprint"))
		return
	}
	if rows == 0 {
		log.Error("sprint not found", slog.String("uid", sprintUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("sprint not found"))
		return
	}

	log.Info("sprint removed", slog.String("uid", sprintUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count": rows,
	}))
}
