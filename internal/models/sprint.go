// Package models содержит доменную модель спринта,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы спринта.
const (
	SprintStatusPlanned   = "Planned"   // Спринт запланирован
	SprintStatusActive    = "Active"    // Спринт идёт
	SprintStatusCompleted = "Completed" // Спринт завершён
)

// Sprint представляет спринт, принадлежащий одному пользователю.
type Sprint struct {
	UID       string    // Уникальный идентификатор спринта
	UserUID   string    // Идентификатор пользователя-владельца
	Name      string    // Название спринта
	StartDate time.Time // Дата начала
	EndDate   time.Time // Дата окончания
	Status    string    // Статус: Planned, Active или Completed
	CreatedAt time.Time // Дата создания записи
	UpdatedAt time.Time // Дата последнего изменения записи
}

// DummySprint используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Sprint. Даты приходят строками
// в формате 2006-01-02, чтобы их можно было валидировать и парсить вручную.
type DummySprint struct {
	Name      string `json:"name" validate:"required,max=100"`                        // Название спринта
	StartDate string `json:"start_date" validate:"required"`                          // Дата начала периода
	EndDate   string `json:"end_date" validate:"required"`                            // Дата окончания периода
	Status    string `json:"status" validate:"omitempty,oneof=Planned Active Completed"` // Статус (по умолчанию Planned)
}

// SprintDTO представляет спринт в ответах API.
type SprintDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
