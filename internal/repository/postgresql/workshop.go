package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workshopRepositoryImpl struct {
	db *database.DB
}

func NewWorkshopRepository(db *database.DB) workshop.WorkshopRepository {
	return &workshopRepositoryImpl{db: db}
}

// Create implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) Create(ctx context.Context, w workshop.Workshop) (workshop.Workshop, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workshops (name, department_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := q.QueryRow(ctx, query, w.Name, w.DepartmentID).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return workshop.Workshop{}, department.ErrDepartmentNotFound
		}
		return workshop.Workshop{}, fmt.Errorf("failed to create workshop: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) GetByID(ctx context.Context, id int64) (workshop.Workshop, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.name, w.department_id, w.is_deleted, w.created_at, w.updated_at, d.name
		FROM workshops w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE w.id = $1 AND NOT w.is_deleted
	`

	var result workshop.Workshop
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.DepartmentID,
		&result.IsDeleted,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workshop.Workshop{}, workshop.ErrWorkshopNotFound
		}
		return workshop.Workshop{}, fmt.Errorf("failed to get workshop: %w", err)
	}

	return result, nil
}

// List implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) List(ctx context.Context, filter workshop.WorkshopFilter) ([]workshop.Workshop, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT w.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND w.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND w.name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM workshops w
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workshops: %w", err)
	}

	column, dir := filter.Normalize(workshop.SortFields, workshop.DefaultSort)
	query := fmt.Sprintf(`
		SELECT w.id, w.name, w.department_id, w.is_deleted, w.created_at, w.updated_at, d.name
		FROM workshops w
		LEFT JOIN departments d ON d.id = w.department_id
		WHERE %s
		ORDER BY %s %s, w.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query workshops: %w", err)
	}
	defer rows.Close()

	var workshops []workshop.Workshop
	for rows.Next() {
		var w workshop.Workshop
		if err := rows.Scan(&w.ID, &w.Name, &w.DepartmentID, &w.IsDeleted, &w.CreatedAt, &w.UpdatedAt, &w.DepartmentName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan workshop: %w", err)
		}
		workshops = append(workshops, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return workshops, total, nil
}

// Update implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) Update(ctx context.Context, req workshop.UpdateWorkshopRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE workshops SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.DepartmentID != nil {
		query += fmt.Sprintf(", department_id = $%d", argIdx)
		args = append(args, *req.DepartmentID)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to update workshop: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return workshop.ErrWorkshopNotFound
	}

	return nil
}

// SoftDelete implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE workshops SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return workshop.ErrWorkshopNotFound
	}

	return nil
}

// HasEmployees implements workshop.WorkshopRepository.
func (r *workshopRepositoryImpl) HasEmployees(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE workshop_id = $1 AND NOT is_deleted)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check workshop employees: %w", err)
	}

	return exists, nil
}
