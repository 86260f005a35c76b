// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, записями об использовании AI-инструментов
// и спринтами. Записи об использовании только добавляются и читаются,
// методов изменения или удаления для них нет.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, на которые опираются обработчики при выборе HTTP-статуса.
var (
	// ErrUsernameTaken возвращается при нарушении уникальности username.
	// Источник истины — ограничение уникальности в базе, а не предварительная проверка.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSprintNotFound возвращается, когда спринт не найден.
	ErrSprintNotFound = errors.New("sprint not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, записями об использовании и спринтами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'ai_tool_usages'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table ai_tool_usages missing or query error: %w", err)
	}
	return nil
}
