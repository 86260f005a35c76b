package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

type UsageRepoMock struct{ mock.Mock }

func (m *UsageRepoMock) CreateUsage(ctx context.Context, record models.UsageRecord) (int, error) {
	args := m.Called(ctx, record)
	return args.Int(0), args.Error(1)
}

func (m *UsageRepoMock) ListUsageByOwner(ctx context.Context, userUID string, limit int) ([]*models.UsageRecord, error) {
	args := m.Called(ctx, userUID, limit)
	return args.Get(0).([]*models.UsageRecord), args.Error(1)
}

func (m *UsageRepoMock) ListUsageSince(ctx context.Context, userUID string, since time.Time) ([]*models.UsageRecord, error) {
	args := m.Called(ctx, userUID, since)
	return args.Get(0).([]*models.UsageRecord), args.Error(1)
}

func (m *UsageRepoMock) ListAllUsage(ctx context.Context, userUID string) ([]*models.UsageRecord, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).([]*models.UsageRecord), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUsage_Create(t *testing.T) {
	usageDate := "2024-03-10T12:00:00Z"
	parsedDate, _ := time.Parse(time.RFC3339, usageDate)
	dummyReq := models.DummyUsage{
		ToolName:            "Copilot",
		UsageDate:           usageDate,
		UsageCount:          5,
		AverageResponseTime: 1.5,
		SuccessfulRequests:  5,
		FailedRequests:      0,
		ProjectName:         "Alpha",
		SprintName:          "Sprint 1",
		TokensUsed:          1200,
		EstimatedCost:       0.42,
	}
	record := models.UsageRecord{
		UserUID:             "uid-123",
		ToolName:            "Copilot",
		UsageDate:           parsedDate,
		UsageCount:          5,
		AverageResponseTime: 1.5,
		SuccessfulRequests:  5,
		FailedRequests:      0,
		ProjectName:         "Alpha",
		SprintName:          "Sprint 1",
		TokensUsed:          1200,
		EstimatedCost:       0.42,
	}

	tests := []struct {
		name       string
		setupMocks func(repo *UsageRepoMock, cache *CacheMock)
		req        models.DummyUsage
		wantID     int
		wantErr    bool
	}{
		{
			name: "успешное создание записи",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				repo.On("CreateUsage", mock.Anything, record).Return(42, nil).Once()
				cache.On("Invalidate", "usage:summary:uid-123").Return(nil).Once()
				cache.On("Invalidate", "usage:projects:uid-123").Return(nil).Once()
			},
			req:    dummyReq,
			wantID: 42,
		},
		{
			name:       "невалидная дата",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {},
			req: models.DummyUsage{
				ToolName:    "Copilot",
				UsageDate:   "not a date",
				ProjectName: "Alpha",
				SprintName:  "Sprint 1",
			},
			wantErr: true,
		},
		{
			name: "без даты запись создается с текущим временем",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				repo.On("CreateUsage", mock.Anything, mock.MatchedBy(func(r models.UsageRecord) bool {
					return r.ToolName == "Copilot" && !r.UsageDate.IsZero()
				})).Return(7, nil).Once()
				cache.On("Invalidate", mock.Anything).Return(nil).Twice()
			},
			req: models.DummyUsage{
				ToolName:    "Copilot",
				UsageCount:  1,
				ProjectName: "Alpha",
				SprintName:  "Sprint 1",
			},
			wantID: 7,
		},
		{
			name: "ошибка инвалидации кеша не ломает создание",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				repo.On("CreateUsage", mock.Anything, record).Return(11, nil).Once()
				cache.On("Invalidate", mock.Anything).Return(errors.New("redis down")).Twice()
			},
			req:    dummyReq,
			wantID: 11,
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				repo.On("CreateUsage", mock.Anything, record).Return(0, errors.New("db down")).Once()
			},
			req:     dummyReq,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UsageRepoMock)
			cache := new(CacheMock)
			svc := NewUsageService(repo, cache, NewNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.Create(context.Background(), "uid-123", tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestUsage_List(t *testing.T) {
	repo := new(UsageRepoMock)
	svc := NewUsageService(repo, new(CacheMock), NewNoopLogger())

	records := []*models.UsageRecord{
		{ID: 2, ToolName: "Copilot"},
		{ID: 1, ToolName: "ChatGPT"},
	}
	repo.On("ListUsageByOwner", mock.Anything, "uid-123", ListLimit).Return(records, nil).Once()

	got, err := svc.List(context.Background(), "uid-123")
	assert.NoError(t, err)
	assert.Equal(t, records, got)

	repo.AssertExpectations(t)
}

func TestUsage_MonthlySummary(t *testing.T) {
	records := []*models.UsageRecord{
		{ToolName: "Copilot", UsageCount: 5, AverageResponseTime: 1.0, SuccessfulRequests: 5, FailedRequests: 0},
		{ToolName: "Copilot", UsageCount: 3, AverageResponseTime: 2.0, SuccessfulRequests: 2, FailedRequests: 1},
	}

	tests := []struct {
		name       string
		setupMocks func(repo *UsageRepoMock, cache *CacheMock)
		check      func(t *testing.T, summary *models.UsageSummary)
		wantErr    bool
	}{
		{
			name: "сводка вычисляется из хранилища и кешируется",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				cache.On("Get", "usage:summary:uid-123", mock.Anything).Return(false, nil).Once()
				repo.On("ListUsageSince", mock.Anything, "uid-123",
					mock.MatchedBy(func(since time.Time) bool {
						// граница — сегодня минус календарный месяц
						want := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, -1, 0)
						return since.Equal(want)
					})).Return(records, nil).Once()
				cache.On("Set", "usage:summary:uid-123", mock.Anything, summaryCacheTTL).Return(nil).Once()
			},
			check: func(t *testing.T, summary *models.UsageSummary) {
				assert.Len(t, summary.MonthlyData, 1)
				assert.Equal(t, 8, summary.MonthlyData[0].TotalUsage)
				assert.InDelta(t, 1.5, summary.MonthlyData[0].AverageResponseTime, 1e-9)
				assert.Equal(t, 8, summary.TotalRequests)
			},
		},
		{
			name: "попадание в кеш не трогает хранилище",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				cache.On("Get", "usage:summary:uid-123", mock.Anything).Return(true, nil).Once()
			},
			check: func(t *testing.T, summary *models.UsageSummary) {
				assert.NotNil(t, summary)
			},
		},
		{
			name: "ошибка кеша не ломает чтение",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				cache.On("Get", "usage:summary:uid-123", mock.Anything).
					Return(false, errors.New("redis down")).Once()
				repo.On("ListUsageSince", mock.Anything, "uid-123", mock.Anything).Return(records, nil).Once()
				cache.On("Set", "usage:summary:uid-123", mock.Anything, summaryCacheTTL).Return(nil).Once()
			},
			check: func(t *testing.T, summary *models.UsageSummary) {
				assert.Equal(t, 8, summary.TotalRequests)
			},
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(repo *UsageRepoMock, cache *CacheMock) {
				cache.On("Get", "usage:summary:uid-123", mock.Anything).Return(false, nil).Once()
				repo.On("ListUsageSince", mock.Anything, "uid-123", mock.Anything).
					Return([]*models.UsageRecord(nil), errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UsageRepoMock)
			cache := new(CacheMock)
			svc := NewUsageService(repo, cache, NewNoopLogger())

			tt.setupMocks(repo, cache)

			summary, err := svc.MonthlySummary(context.Background(), "uid-123")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.check(t, summary)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestUsage_ProjectStats(t *testing.T) {
	records := []*models.UsageRecord{
		{ToolName: "Copilot", ProjectName: "Alpha", UsageCount: 10, EstimatedCost: 1.5},
		{ToolName: "ChatGPT", ProjectName: "Alpha", UsageCount: 5, EstimatedCost: 0.5},
	}

	repo := new(UsageRepoMock)
	cache := new(CacheMock)
	svc := NewUsageService(repo, cache, NewNoopLogger())

	cache.On("Get", "usage:projects:uid-123", mock.Anything).Return(false, nil).Once()
	repo.On("ListAllUsage", mock.Anything, "uid-123").Return(records, nil).Once()
	cache.On("Set", "usage:projects:uid-123", mock.Anything, summaryCacheTTL).Return(nil).Once()

	stats, err := svc.ProjectStats(context.Background(), "uid-123")
	assert.NoError(t, err)
	assert.Len(t, stats, 1)
	assert.Equal(t, "Alpha", stats[0].ProjectName)
	assert.Equal(t, 15, stats[0].TotalUsage)
	assert.InDelta(t, 2.0, stats[0].TotalCost, 1e-9)
	assert.Len(t, stats[0].ToolBreakdown, 2)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
