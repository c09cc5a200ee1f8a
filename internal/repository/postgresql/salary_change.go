package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const salaryChangeSelect = `
	SELECT sc.id, sc.employee_id, sc.change_date, sc.old_base_salary, sc.new_base_salary, sc.reason,
	       sc.is_deleted, sc.created_at, sc.updated_at, e.full_name
	FROM salary_changes sc
	LEFT JOIN employees e ON e.id = sc.employee_id
`

func scanSalaryChange(row pgx.Row) (employee.SalaryChange, error) {
	var c employee.SalaryChange
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.ChangeDate, &c.OldBaseSalary, &c.NewBaseSalary, &c.Reason,
		&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt, &c.EmployeeName,
	)
	return c, err
}

type salaryChangeRepositoryImpl struct {
	db *database.DB
}

func NewSalaryChangeRepository(db *database.DB) employee.SalaryChangeRepository {
	return &salaryChangeRepositoryImpl{db: db}
}

// Create implements employee.SalaryChangeRepository.
func (r *salaryChangeRepositoryImpl) Create(ctx context.Context, c employee.SalaryChange) (employee.SalaryChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_changes (employee_id, change_date, old_base_salary, new_base_salary, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, change_date, old_base_salary, new_base_salary, reason, is_deleted, created_at, updated_at
	`

	var result employee.SalaryChange
	err := q.QueryRow(ctx, query, c.EmployeeID, c.ChangeDate, c.OldBaseSalary, c.NewBaseSalary, c.Reason).Scan(
		&result.ID,
		&result.EmployeeID,
		&result.ChangeDate,
		&result.OldBaseSalary,
		&result.NewBaseSalary,
		&result.Reason,
		&result.IsDeleted,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.SalaryChange{}, employee.ErrEmployeeNotFound
		}
		return employee.SalaryChange{}, fmt.Errorf("failed to create salary change: %w", err)
	}

	return result, nil
}

// GetByID implements employee.SalaryChangeRepository.
func (r *salaryChangeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.SalaryChange, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanSalaryChange(q.QueryRow(ctx, salaryChangeSelect+" WHERE sc.id = $1 AND NOT sc.is_deleted", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.SalaryChange{}, employee.ErrSalaryChangeNotFound
		}
		return employee.SalaryChange{}, fmt.Errorf("failed to get salary change by id: %w", err)
	}

	return c, nil
}

// List implements employee.SalaryChangeRepository.
func (r *salaryChangeRepositoryImpl) List(ctx context.Context, filter employee.SalaryChangeFilter) ([]employee.SalaryChange, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT sc.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND sc.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		where += fmt.Sprintf(" AND sc.change_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		where += fmt.Sprintf(" AND sc.change_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM salary_changes sc WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary changes: %w", err)
	}

	column, dir := filter.Normalize(employee.SalaryChangeSortFields, employee.DefaultSort)
	query := salaryChangeSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, sc.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query salary changes: %w", err)
	}
	defer rows.Close()

	var changes []employee.SalaryChange
	for rows.Next() {
		c, err := scanSalaryChange(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary change: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return changes, total, nil
}

// Update implements employee.SalaryChangeRepository.
func (r *salaryChangeRepositoryImpl) Update(ctx context.Context, req employee.UpdateSalaryChangeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE salary_changes SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.ChangeDate != nil {
		query += fmt.Sprintf(", change_date = $%d", argIdx)
		args = append(args, *req.ChangeDate)
		argIdx++
	}
	if req.OldBaseSalary != nil {
		query += fmt.Sprintf(", old_base_salary = $%d", argIdx)
		args = append(args, *req.OldBaseSalary)
		argIdx++
	}
	if req.NewBaseSalary != nil {
		query += fmt.Sprintf(", new_base_salary = $%d", argIdx)
		args = append(args, *req.NewBaseSalary)
		argIdx++
	}
	if req.Reason != nil {
		query += fmt.Sprintf(", reason = $%d", argIdx)
		args = append(args, *req.Reason)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update salary change: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrSalaryChangeNotFound
	}

	return nil
}

// SoftDelete implements employee.SalaryChangeRepository.
func (r *salaryChangeRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE salary_changes SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary change: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrSalaryChangeNotFound
	}

	return nil
}
