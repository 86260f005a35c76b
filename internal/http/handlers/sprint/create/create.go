// Package create реализует HTTP-обработчик создания нового спринта.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики создания спринта.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummySprint) (*models.Sprint, error)
}

// Handler обрабатывает запросы на создание спринта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sprint.create"

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

	var req models.DummySprint
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	sprint, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create sprint", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create sprint"))
		return
	}

	log.Info("sprint created", slog.String("uid", sprint.UID))
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
