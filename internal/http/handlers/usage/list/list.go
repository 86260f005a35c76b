// Package list реализует HTTP-обработчик выборки последних записей
// об использовании AI-инструментов текущего пользователя.
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

// Service описывает интерфейс бизнес-логики выборки записей.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.UsageRecord, error)
}

// Handler обрабатывает запросы на получение записей пользователя.
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
	const op = "handlers.usage.list"

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

	records, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list usage records", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list usage records"))
		return
	}

	dtos := make([]models.UsageDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, models.UsageDTO{
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
		})
	}

	log.Info("usage records listed", "count", len(dtos))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(dtos),
		"records":    dtos,
	}))
}
