// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Обработчик декодирует JSON с данными учётной записи, валидирует поля,
// проверяет совпадение пароля с подтверждением и делегирует создание
// пользователя сервису аутентификации. Занятое имя пользователя возвращается
// как HTTP 400 с понятным сообщением.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/http/response"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
	"github.com/magabrotheeeer/ai-usage-tracker/internal/storage/repository"
)

// Request — входные данные для регистрации
type Request struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
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
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.Password != req.ConfirmPassword {
		log.Error("password confirmation mismatch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("passwords do not match"))
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			log.Error("username already taken", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("useruid", user.UUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_id":  user.UUID,
		"username": user.Username,
		"role":     user.Role,
	}))
}
