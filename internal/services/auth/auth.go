// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/password"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любой неудаче входа:
// отсутствие пользователя и неверный пароль не различаются,
// чтобы не позволять перебор имён пользователей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByUID возвращает пользователя по UID или ошибку, если не найден.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)

	// UsernameExists проверяет, занято ли имя пользователя.
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью TeamLead.
//
// Проверка занятости имени перед вставкой — только быстрый путь;
// при гонке конфликт фиксирует ограничение уникальности в базе,
// и repository.ErrUsernameTaken приходит уже из хранилища.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (*models.User, error) {
	const op = "services.auth.Register"

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrUsernameTaken)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UUID:         uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleTeamLead, // дефолтная роль при регистрации
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.RegisterUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Любое несовпадение — отсутствующий пользователь или неверный пароль —
// возвращается как единый ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		UUID:     claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}
	return user, nil
}

// CurrentUser возвращает актуальные данные пользователя по UID из токена.
// Если запись пользователя уже удалена, приходит repository.ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUserByUID(ctx, userUID)
}
