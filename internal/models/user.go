// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и даты создания и последнего входа.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей, допустимые в системе.
const (
	RoleAdmin          = "Admin"          // Администратор
	RoleProjectManager = "ProjectManager" // Менеджер проекта
	RoleTeamLead       = "TeamLead"       // Тимлид, роль по умолчанию при регистрации
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя: Admin, ProjectManager или TeamLead
	CreatedAt    time.Time  // Дата регистрации
	LastLoginAt  *time.Time // Дата последнего входа, nil до первого входа
}
