// Package models содержит доменные структуры, описывающие записи об использовании
// AI-инструментов, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// UsageRecord представляет одну запись об использовании AI-инструмента.
// Записи только добавляются: API не предоставляет операций изменения или удаления.
type UsageRecord struct {
	ID                  int       // Идентификатор записи
	UserUID             string    // Идентификатор пользователя-владельца
	ToolName            string    // Название инструмента
	UsageDate           time.Time // Дата использования
	UsageCount          int       // Количество использований
	AverageResponseTime float64   // Среднее время ответа в секундах
	SuccessfulRequests  int       // Количество успешных запросов
	FailedRequests      int       // Количество неуспешных запросов
	ProjectName         string    // Название проекта
	SprintName          string    // Название спринта
	TokensUsed          float64   // Количество использованных токенов
	EstimatedCost       float64   // Оценочная стоимость
}

// DummyUsage используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в UsageRecord.
// Дата приходит строкой в формате RFC3339; если поле пустое,
// используется время приёма запроса.
type DummyUsage struct {
	ToolName            string  `json:"tool_name" validate:"required,max=100"`    // Название инструмента
	UsageDate           string  `json:"usage_date,omitempty"`                     // Дата использования (опционально)
	UsageCount          int     `json:"usage_count"`                              // Количество использований
	AverageResponseTime float64 `json:"average_response_time"`                    // Среднее время ответа в секундах
	SuccessfulRequests  int     `json:"successful_requests"`                      // Количество успешных запросов
	FailedRequests      int     `json:"failed_requests"`                          // Количество неуспешных запросов
	ProjectName         string  `json:"project_name" validate:"required,max=100"` // Название проекта
	SprintName          string  `json:"sprint_name" validate:"required,max=100"`  // Название спринта
	TokensUsed          float64 `json:"tokens_used"`                              // Количество использованных токенов
	EstimatedCost       float64 `json:"estimated_cost"`                           // Оценочная стоимость
}

// UsageDTO представляет запись об использовании в ответах API.
type UsageDTO struct {
	ToolName            string    `json:"tool_name"`
	UsageDate           time.Time `json:"usage_date"`
	UsageCount          int       `json:"usage_count"`
	AverageResponseTime float64   `json:"average_response_time"`
	SuccessfulRequests  int       `json:"successful_requests"`
	FailedRequests      int       `json:"failed_requests"`
	ProjectName         string    `json:"project_name"`
	SprintName          string    `json:"sprint_name"`
	TokensUsed          float64   `json:"tokens_used"`
	EstimatedCost       float64   `json:"estimated_cost"`
}

// MonthlyToolSummary содержит агрегаты по одному инструменту за месяц.
// Вычисляется при чтении и нигде не сохраняется.
type MonthlyToolSummary struct {
	ToolName            string  `json:"tool_name"`             // Название инструмента
	TotalUsage          int     `json:"total_usage"`           // Суммарное количество использований
	AverageResponseTime float64 `json:"average_response_time"` // Невзвешенное среднее времён ответа по записям
	SuccessRate         float64 `json:"success_rate"`          // Доля успешных запросов в процентах
	TotalTokens         float64 `json:"total_tokens"`          // Суммарное количество токенов
	TotalCost           float64 `json:"total_cost"`            // Суммарная стоимость
}

// UsageSummary представляет месячную сводку по всем инструментам пользователя.
type UsageSummary struct {
	MonthlyData        []MonthlyToolSummary `json:"monthly_data"`         // Агрегаты по каждому инструменту
	TotalRequests      int                  `json:"total_requests"`       // Сумма использований по всем инструментам
	TotalCost          float64              `json:"total_cost"`           // Суммарная стоимость по всем инструментам
	AverageSuccessRate float64              `json:"average_success_rate"` // Невзвешенное среднее success rate по группам
}

// ToolBreakdown содержит количество использований одного инструмента внутри проекта.
type ToolBreakdown struct {
	ToolName string `json:"tool_name"` // Название инструмента
	Usage    int    `json:"usage"`     // Суммарное количество использований
}

// ProjectSummary содержит агрегаты по одному проекту пользователя
// с разбивкой по инструментам.
type ProjectSummary struct {
	ProjectName   string          `json:"project_name"`   // Название проекта
	TotalUsage    int             `json:"total_usage"`    // Суммарное количество использований
	TotalCost     float64         `json:"total_cost"`     // Суммарная стоимость
	ToolBreakdown []ToolBreakdown `json:"tool_breakdown"` // Разбивка по инструментам
}
