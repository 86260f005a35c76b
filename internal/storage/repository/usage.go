package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// CreateUsage вставляет новую запись об использовании AI-инструмента и возвращает её ID.
// Значения сохраняются ровно в том виде, в каком их прислал клиент.
func (s *Storage) CreateUsage(ctx context.Context, record models.UsageRecord) (int, error) {
	const op = "storage.CreateUsage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO ai_tool_usages (user_uid, tool_name, usage_date, usage_count,
			      avg_response_time, successful_requests, failed_requests,
			      project_name, sprint_name, tokens_used, estimated_cost)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		record.UserUID, record.ToolName, record.UsageDate, record.UsageCount,
		record.AverageResponseTime, record.SuccessfulRequests, record.FailedRequests,
		record.ProjectName, record.SprintName, record.TokensUsed, record.EstimatedCost).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListUsageByOwner возвращает не более limit самых свежих записей пользователя,
// отсортированных по дате использования по убыванию. Записи других пользователей
// никогда не попадают в выборку.
func (s *Storage) ListUsageByOwner(ctx context.Context, userUID string, limit int) ([]*models.UsageRecord, error) {
	const op = "storage.ListUsageByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, tool_name, usage_date, usage_count, avg_response_time,
			      successful_requests, failed_requests, project_name, sprint_name,
			      tokens_used, estimated_cost
			  FROM ai_tool_usages
			  WHERE user_uid = $1
			  ORDER BY usage_date DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UsageRecord
	for rows.Next() {
		var item models.UsageRecord
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ToolName, &item.UsageDate,
			&item.UsageCount, &item.AverageResponseTime, &item.SuccessfulRequests,
			&item.FailedRequests, &item.ProjectName, &item.SprintName,
			&item.TokensUsed, &item.EstimatedCost); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUsageSince возвращает все записи пользователя с датой использования не раньше since.
// Используется движком агрегации для месячной сводки.
func (s *Storage) ListUsageSince(ctx context.Context, userUID string, since time.Time) ([]*models.UsageRecord, error) {
	const op = "storage.ListUsageSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, tool_name, usage_date, usage_count, avg_response_time,
			      successful_requests, failed_requests, project_name, sprint_name,
			      tokens_used, estimated_cost
			  FROM ai_tool_usages
			  WHERE user_uid = $1
			    AND usage_date >= $2
			  ORDER BY usage_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UsageRecord
	for rows.Next() {
		var item models.UsageRecord
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ToolName, &item.UsageDate,
			&item.UsageCount, &item.AverageResponseTime, &item.SuccessfulRequests,
			&item.FailedRequests, &item.ProjectName, &item.SprintName,
			&item.TokensUsed, &item.EstimatedCost); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllUsage возвращает все записи пользователя без фильтра по дате.
// Используется движком агрегации для статистики по проектам.
func (s *Storage) ListAllUsage(ctx context.Context, userUID string) ([]*models.UsageRecord, error) {
	const op = "storage.ListAllUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, tool_name, usage_date, usage_count, avg_response_time,
			      successful_requests, failed_requests, project_name, sprint_name,
			      tokens_used, estimated_cost
			  FROM ai_tool_usages
			  WHERE user_uid = $1
			  ORDER BY usage_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UsageRecord
	for rows.Next() {
		var item models.UsageRecord
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ToolName, &item.UsageDate,
			&item.UsageCount, &item.AverageResponseTime, &item.SuccessfulRequests,
			&item.FailedRequests, &item.ProjectName, &item.SprintName,
			&item.TokensUsed, &item.EstimatedCost); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
