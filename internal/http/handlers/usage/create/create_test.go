package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummyUsage) (*models.UsageRecord, error) {
	args := m.Called(ctx, userUID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.UsageRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateUsageHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	usageDate, _ := time.Parse(time.RFC3339, "2024-03-10T12:00:00Z")
	record := &models.UsageRecord{
		ID:                  42,
		UserUID:             "uid-123",
		ToolName:            "Copilot",
		UsageDate:           usageDate,
		UsageCount:          5,
		AverageResponseTime: 1.5,
		SuccessfulRequests:  5,
		ProjectName:         "Alpha",
		SprintName:          "Sprint 1",
		TokensUsed:          1200,
		EstimatedCost:       0.42,
	}

	validBody := `{"tool_name":"Copilot","usage_date":"2024-03-10T12:00:00Z","usage_count":5,` +
		`"average_response_time":1.5,"successful_requests":5,"failed_requests":0,` +
		`"project_name":"Alpha","sprint_name":"Sprint 1","tokens_used":1200,"estimated_cost":0.42}`

	tests := []struct {
		name           string
		userUID        string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное создание записи",
			userUID: "uid-123",
			body:    validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-123", mock.AnythingOfType("models.DummyUsage")).
					Return(record, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tool_name":"Copilot"`,
		},
		{
			name:           "нет uid в контексте",
			userUID:        "",
			body:           validBody,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "некорректный JSON",
			userUID:        "uid-123",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует название инструмента",
			userUID:        "uid-123",
			body:           `{"project_name":"Alpha","sprint_name":"Sprint 1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field ToolName is a required field`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "uid-123",
			body:    validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-123", mock.AnythingOfType("models.DummyUsage")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to create usage record"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/AIToolUsage", strings.NewReader(tt.body))
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
