// Package services содержит бизнес-логику для работы с записями об использовании
// AI-инструментов: приём новых записей, выборку последних записей и вычисление
// сводных показателей с кешированием результатов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/aggregate"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// ListLimit ограничивает количество записей, возвращаемых выборкой последних записей.
const ListLimit = 100

// Время жизни закешированных агрегатов.
const summaryCacheTTL = 5 * time.Minute

// UsageRepository определяет методы для работы с записями об использовании в хранилище.
type UsageRepository interface {
	// CreateUsage добавляет новую запись и возвращает её ID.
	CreateUsage(ctx context.Context, record models.UsageRecord) (int, error)
	// ListUsageByOwner возвращает не более limit самых свежих записей пользователя.
	ListUsageByOwner(ctx context.Context, userUID string, limit int) ([]*models.UsageRecord, error)
	// ListUsageSince возвращает записи пользователя не раньше указанной даты.
	ListUsageSince(ctx context.Context, userUID string, since time.Time) ([]*models.UsageRecord, error)
	// ListAllUsage возвращает все записи пользователя.
	ListAllUsage(ctx context.Context, userUID string) ([]*models.UsageRecord, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UsageService реализует бизнес-логику работы с записями об использовании.
type UsageService struct {
	repo  UsageRepository
	cache Cache
	log   *slog.Logger
}

// NewUsageService создает новый экземпляр UsageService.
func NewUsageService(repo UsageRepository, cache Cache, log *slog.Logger) *UsageService {
	return &UsageService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет новую запись об использовании для пользователя.
//
// Дата использования берётся из запроса (RFC3339); если она не указана,
// используется текущее время. Остальные значения сохраняются как пришли,
// без нормализации. После вставки кеш агрегатов пользователя сбрасывается.
func (s *UsageService) Create(ctx context.Context, userUID string, req models.DummyUsage) (*models.UsageRecord, error) {
	usageDate := time.Now().UTC()
	if req.UsageDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.UsageDate)
		if err != nil {
			return nil, fmt.Errorf("invalid usage date: %w", err)
		}
		usageDate = parsed
	}

	record := models.UsageRecord{
		UserUID:             userUID,
		ToolName:            req.ToolName,
		UsageDate:           usageDate,
		UsageCount:          req.UsageCount,
		AverageResponseTime: req.AverageResponseTime,
		SuccessfulRequests:  req.SuccessfulRequests,
		FailedRequests:      req.FailedRequests,
		ProjectName:         req.ProjectName,
		SprintName:          req.SprintName,
		TokensUsed:          req.TokensUsed,
		EstimatedCost:       req.EstimatedCost,
	}

	id, err := s.repo.CreateUsage(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.log.Info("created new usage record", slog.Int("id", id))

	for _, cacheKey := range []string{summaryCacheKey(userUID), projectsCacheKey(userUID)} {
		if err := s.cache.Invalidate(cacheKey); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	return &record, nil
}

// List возвращает не более 100 самых свежих записей пользователя,
// отсортированных по дате использования по убыванию.
func (s *UsageService) List(ctx context.Context, userUID string) ([]*models.UsageRecord, error) {
	return s.repo.ListUsageByOwner(ctx, userUID, ListLimit)
}

// MonthlySummary возвращает месячную сводку по инструментам пользователя.
//
// Граница периода — текущая дата минус один календарный месяц,
// не фиксированное окно в 30 дней.
func (s *UsageService) MonthlySummary(ctx context.Context, userUID string) (*models.UsageSummary, error) {
	cacheKey := summaryCacheKey(userUID)
	var cached models.UsageSummary
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read summary from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, -1, 0)

	records, err := s.repo.ListUsageSince(ctx, userUID, since)
	if err != nil {
		return nil, err
	}

	summary := aggregate.MonthlySummary(records)

	if err := s.cache.Set(cacheKey, summary, summaryCacheTTL); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &summary, nil
}

// ProjectStats возвращает статистику по всем проектам пользователя
// без фильтра по дате.
func (s *UsageService) ProjectStats(ctx context.Context, userUID string) ([]models.ProjectSummary, error) {
	cacheKey := projectsCacheKey(userUID)
	var cached []models.ProjectSummary
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read project stats from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	records, err := s.repo.ListAllUsage(ctx, userUID)
	if err != nil {
		return nil, err
	}

	stats := aggregate.ProjectStats(records)

	if err := s.cache.Set(cacheKey, stats, summaryCacheTTL); err != nil {
		s.log.Warn("failed to cache project stats", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return stats, nil
}

func summaryCacheKey(userUID string) string {
	return fmt.Sprintf("usage:summary:%s", userUID)
}

func projectsCacheKey(userUID string) string {
	return fmt.Sprintf("usage:projects:%s", userUID)
}
