package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	args := m.Called(ctx, email, username, password)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"test@example.com","username":"testuser","password":"secretpass","confirmPassword":"secretpass"}`,
			setupMock: func(m *MockService) {
				user := &models.User{
					UUID:     "uid-123",
					Email:    "test@example.com",
					Username: "testuser",
					Role:     models.RoleTeamLead,
				}
				m.On("Register", mock.Anything, "test@example.com", "testuser", "secretpass").
					Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":"uid-123"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "пароли не совпадают",
			body:           `{"email":"test@example.com","username":"testuser","password":"secretpass","confirmPassword":"otherpass"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"passwords do not match"`,
		},
		{
			name:           "отсутствует email",
			body:           `{"username":"testuser","password":"secretpass","confirmPassword":"secretpass"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is a required field`,
		},
		{
			name: "имя пользователя занято",
			body: `{"email":"test@example.com","username":"testuser","password":"secretpass","confirmPassword":"secretpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "test@example.com", "testuser", "secretpass").
					Return(nil, repository.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"username already taken"`,
		},
		{
			name: "ошибка сервиса регистрации",
			body: `{"email":"test@example.com","username":"testuser","password":"secretpass","confirmPassword":"secretpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "test@example.com", "testuser", "secretpass").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
