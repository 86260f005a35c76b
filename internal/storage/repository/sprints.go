package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ai-usage-tracker/internal/models"
)

// CreateSprint вставляет новый спринт и возвращает его UID.
func (s *Storage) CreateSprint(ctx context.Context, sprint models.Sprint) (string, error) {
	const op = "storage.CreateSprint"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sprints (uid, user_uid, name, start_date, end_date, status,
			      created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		sprint.UID, sprint.UserUID, sprint.Name, sprint.StartDate, sprint.EndDate,
		sprint.Status, sprint.CreatedAt, sprint.UpdatedAt).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// ReadSprint возвращает спринт пользователя по UID спринта.
func (s *Storage) ReadSprint(ctx context.Context, userUID, sprintUID string) (*models.Sprint, error) {
	const op = "storage.ReadSprint"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, name, start_date, end_date, status, created_at, updated_at
			  FROM sprints
			  WHERE uid = $1 AND user_uid = $2`
	var result models.Sprint
	row := s.DB.QueryRowContext(ctx, query, sprintUID, userUID)
	if err := row.Scan(&result.UID, &result.UserUID, &result.Name, &result.StartDate,
		&result.EndDate, &result.Status, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSprintNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSprints возвращает все спринты пользователя, отсортированные по дате начала по убыванию.
func (s *Storage) ListSprints(ctx context.Context, userUID string) ([]*models.Sprint, error) {
	const op = "storage.ListSprints"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, name, start_date, end_date, status, created_at, updated_at
			  FROM sprints
			  WHERE user_uid = $1
			  ORDER BY start_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Sprint
	for rows.Next() {
		var item models.Sprint
		if err := rows.Scan(&item.UID, &item.UserUID, &item.Name, &item.StartDate,
			&item.EndDate, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSprint обновляет данные спринта пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateSprint(ctx context.Context, sprint models.Sprint) (int, error) {
	const op = "storage.UpdateSprint"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sprints
			  SET name = $1, start_date = $2, end_date = $3, status = $4, updated_at = $5
			  WHERE uid = $6 AND user_uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		sprint.Name, sprint.StartDate, sprint.EndDate, sprint.Status, sprint.UpdatedAt,
		sprint.UID, sprint.UserUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSprint удаляет спринт пользователя по UID и возвращает количество удалённых строк.
func (s *Storage) RemoveSprint(ctx context.Context, userUID, sprintUID string) (int, error) {
	const op = "storage.RemoveSprint"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sprints WHERE uid = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, sprintUID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
