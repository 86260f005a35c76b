// Package services содержит бизнес-логику управления спринтами пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// Формат дат спринта в JSON-запросах.
const sprintDateLayout = "2006-01-02"

// SprintRepository определяет методы для работы со спринтами в хранилище.
type SprintRepository interface {
	// CreateSprint добавляет новый спринт и возвращает его UID.
	CreateSprint(ctx context.Context, sprint models.Sprint) (string, error)
	// ReadSprint возвращает спринт пользователя по UID.
	ReadSprint(ctx context.Context, userUID, sprintUID string) (*models.Sprint, error)
	// ListSprints возвращает все спринты пользователя.
	ListSprints(ctx context.Context, userUID string) ([]*models.Sprint, error)
	// UpdateSprint обновляет спринт и возвращает количество изменённых строк.
	UpdateSprint(ctx context.Context, sprint models.Sprint) (int, error)
	// RemoveSprint удаляет спринт и возвращает количество удалённых строк.
	RemoveSprint(ctx context.Context, userUID, sprintUID string) (int, error)
}

// SprintService реализует бизнес-логику работы со спринтами.
type SprintService struct {
	repo SprintRepository
	log  *slog.Logger
}

// NewSprintService создает новый экземпляр SprintService.
func NewSprintService(repo SprintRepository, log *slog.Logger) *SprintService {
	return &SprintService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый спринт для пользователя и возвращает его.
// Если статус не указан, спринт создаётся в статусе Planned.
func (s *SprintService) Create(ctx context.Context, userUID string, req models.DummySprint) (*models.Sprint, error) {
	startDate, err := time.Parse(sprintDateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(sprintDateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("sprint end date must not be earlier than start date")
	}

	status := req.Status
	if status == "" {
		status = models.SprintStatusPlanned
	}

	now := time.Now().UTC()
	sprint := models.Sprint{
		UID:       uuid.NewString(),
		UserUID:   userUID,
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.repo.CreateSprint(ctx, sprint); err != nil {
		return nil, err
	}

	s.log.Info("created new sprint", slog.String("uid", sprint.UID))
	return &sprint, nil
}

// Read возвращает спринт пользователя по UID.
func (s *SprintService) Read(ctx context.Context, userUID, sprintUID string) (*models.Sprint, error) {
	return s.repo.ReadSprint(ctx, userUID, sprintUID)
}

// List возвращает все спринты пользователя.
func (s *SprintService) List(ctx context.Context, userUID string) ([]*models.Sprint, error) {
	return s.repo.ListSprints(ctx, userUID)
}

// Update обновляет спринт пользователя и возвращает обновлённые данные.
// Возвращает количество изменённых строк: ноль означает, что спринта нет.
func (s *SprintService) Update(ctx context.Context, userUID, sprintUID string, req models.DummySprint) (int, error) {
	startDate, err := time.Parse(sprintDateLayout, req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(sprintDateLayout, req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.SprintStatusPlanned
	}

	sprint := models.Sprint{
		UID:       sprintUID,
		UserUID:   userUID,
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}
	return s.repo.UpdateSprint(ctx, sprint)
}

// Remove удаляет спринт пользователя и возвращает количество удалённых строк.
func (s *SprintService) Remove(ctx context.Context, userUID, sprintUID string) (int, error) {
	return s.repo.RemoveSprint(ctx, userUID, sprintUID)
}
