package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type JwtMakerMock struct{ mock.Mock }

func (m *JwtMakerMock) GenerateToken(useruid, username, role string) (string, error) {
	args := m.Called(useruid, username, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(users *UserRepoMock)
		wantErr    error
	}{
		{
			name: "успешная регистрация",
			setupMocks: func(users *UserRepoMock) {
				users.On("UsernameExists", mock.Anything, "testuser").Return(false, nil).Once()
				users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "testuser" &&
						u.Email == "test@example.com" &&
						u.Role == models.RoleTeamLead &&
						u.UUID != "" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secretpass")) == nil
				})).Return("some-uid", nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "имя пользователя занято",
			setupMocks: func(users *UserRepoMock) {
				users.On("UsernameExists", mock.Anything, "testuser").Return(true, nil).Once()
			},
			wantErr: repository.ErrUsernameTaken,
		},
		{
			name: "конфликт уникальности при вставке",
			setupMocks: func(users *UserRepoMock) {
				users.On("UsernameExists", mock.Anything, "testuser").Return(false, nil).Once()
				users.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", repository.ErrUsernameTaken).Once()
			},
			wantErr: repository.ErrUsernameTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			maker := new(JwtMakerMock)
			svc := NewAuthService(users, maker)

			tt.setupMocks(users)

			user, err := svc.Register(context.Background(), "test@example.com", "testuser", "secretpass")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "testuser", user.Username)
				assert.Equal(t, models.RoleTeamLead, user.Role)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secretpass"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	storedUser := &models.User{
		UUID:         "uid-123",
		Username:     "testuser",
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	tests := []struct {
		name       string
		setupMocks func(users *UserRepoMock, maker *JwtMakerMock)
		password   string
		wantToken  string
		wantErr    error
	}{
		{
			name: "успешный вход",
			setupMocks: func(users *UserRepoMock, maker *JwtMakerMock) {
				users.On("GetUserByUsername", mock.Anything, "testuser").Return(storedUser, nil).Once()
				maker.On("GenerateToken", "uid-123", "testuser", models.RoleAdmin).
					Return("signed.jwt.token", nil).Once()
			},
			password:  "secretpass",
			wantToken: "signed.jwt.token",
		},
		{
			name: "пользователь не найден",
			setupMocks: func(users *UserRepoMock, maker *JwtMakerMock) {
				users.On("GetUserByUsername", mock.Anything, "testuser").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			password: "secretpass",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name: "неверный пароль",
			setupMocks: func(users *UserRepoMock, maker *JwtMakerMock) {
				users.On("GetUserByUsername", mock.Anything, "testuser").Return(storedUser, nil).Once()
			},
			password: "wrongpass",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name: "ошибка генерации токена",
			setupMocks: func(users *UserRepoMock, maker *JwtMakerMock) {
				users.On("GetUserByUsername", mock.Anything, "testuser").Return(storedUser, nil).Once()
				maker.On("GenerateToken", "uid-123", "testuser", models.RoleAdmin).
					Return("", errors.New("sign failed")).Once()
			},
			password: "secretpass",
			wantErr:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			maker := new(JwtMakerMock)
			svc := NewAuthService(users, maker)

			tt.setupMocks(users, maker)

			token, user, err := svc.Login(context.Background(), "testuser", tt.password)
			switch {
			case tt.wantToken != "":
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, storedUser, user)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrInvalidCredentials)
			}

			users.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuth_ValidateToken(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(maker *JwtMakerMock)
		wantUser   *models.User
		wantErr    bool
	}{
		{
			name: "валидный токен",
			setupMocks: func(maker *JwtMakerMock) {
				claims := &jwt.CustomClaims{
					Username: "testuser",
					Role:     models.RoleTeamLead,
				}
				claims.Subject = "uid-123"
				maker.On("ParseToken", "good.token").Return(claims, nil).Once()
			},
			wantUser: &models.User{
				UUID:     "uid-123",
				Username: "testuser",
				Role:     models.RoleTeamLead,
			},
		},
		{
			name: "невалидный токен",
			setupMocks: func(maker *JwtMakerMock) {
				maker.On("ParseToken", "good.token").Return(nil, errors.New("token is expired")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maker := new(JwtMakerMock)
			svc := NewAuthService(new(UserRepoMock), maker)

			tt.setupMocks(maker)

			user, err := svc.ValidateToken(context.Background(), "good.token")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}

			maker.AssertExpectations(t)
		})
	}
}

func TestAuth_CurrentUser(t *testing.T) {
	users := new(UserRepoMock)
	svc := NewAuthService(users, new(JwtMakerMock))

	want := &models.User{UUID: "uid-123", Username: "testuser", Role: models.RoleProjectManager}
	users.On("GetUserByUID", mock.Anything, "uid-123").Return(want, nil).Once()
	users.On("GetUserByUID", mock.Anything, "missing").Return(nil, repository.ErrUserNotFound).Once()

	got, err := svc.CurrentUser(context.Background(), "uid-123")
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.CurrentUser(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	users.AssertExpectations(t)
}
