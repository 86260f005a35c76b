// Package create реализует HTTP-обработчик приёма новой записи об использовании
// AI-инструмента. Запись привязывается к пользователю из контекста,
// в ответе возвращается сохранённая запись.
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

// Service описывает интерфейс бизнес-логики создания записи об использовании.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyUsage) (*models.UsageRecord, error)
}

// Handler обрабатывает запросы на создание записи об использовании.
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
	const op = "handlers.usage.create"

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

	var req models.DummyUsage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("tool_name", req.ToolName))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	record, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create usage record", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create usage record"))
		return
	}

	log.Info("usage record created", slog.Int("id", record.ID))
	render.JSON(w, r, response.StatusOKWithData(models.UsageDTO{
		ToolName:            record.ToolName,
		UsageDate:           record.UsageDate,
		UsageCount:          record.UsageCount,
		AverageResponseTime: record.AverageResponseTime,
		SuccessfulRequests:  record.SuccessfulRequests,
		FailedRequests:      record.FailedRequests,
		ProjectName:         record.ProjectName,
		SprintName:          record.SprintName,
		TokensUsed:          record.TokensUsed,
		EstimatedCost:       record.EstimatedCost,
	}))
}
