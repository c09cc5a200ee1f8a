package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const logisticsSelect = `
	SELECT l.id, l.employee_id, l.month, l.housing_deduction, l.meal_allowance, l.utilities_deduction,
	       l.is_deleted, l.created_at, l.updated_at, e.full_name
	FROM logistics_data l
	LEFT JOIN employees e ON e.id = l.employee_id
`

type logisticsRepositoryImpl struct {
	db *database.DB
}

func NewLogisticsRepository(db *database.DB) logistics.LogisticsRepository {
	return &logisticsRepositoryImpl{db: db}
}

func scanLogistics(row pgx.Row) (logistics.LogisticsData, error) {
	var l logistics.LogisticsData
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.Month,
		&l.HousingDeduction,
		&l.MealAllowance,
		&l.UtilitiesDeduction,
		&l.IsDeleted,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.EmployeeName,
	)
	return l, err
}

// Create implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) Create(ctx context.Context, l logistics.LogisticsData) (logistics.LogisticsData, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO logistics_data (employee_id, month, housing_deduction, meal_allowance, utilities_deduction)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, l.EmployeeID, l.Month, l.HousingDeduction, l.MealAllowance, l.UtilitiesDeduction).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_logistics_employee_month") {
			return logistics.LogisticsData{}, logistics.ErrLogisticsExists
		}
		if isForeignKeyViolation(err) {
			return logistics.LogisticsData{}, employee.ErrEmployeeNotFound
		}
		return logistics.LogisticsData{}, fmt.Errorf("failed to create logistics data: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) GetByID(ctx context.Context, id int64) (logistics.LogisticsData, error) {
	return r.getOne(ctx, ` WHERE l.id = $1 AND NOT l.is_deleted`, id)
}

// GetByEmployeeMonth implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (logistics.LogisticsData, error) {
	return r.getOne(ctx, ` WHERE l.employee_id = $1 AND l.month = $2 AND NOT l.is_deleted`, employeeID, month)
}

func (r *logisticsRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (logistics.LogisticsData, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLogistics(q.QueryRow(ctx, logisticsSelect+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logistics.LogisticsData{}, logistics.ErrLogisticsNotFound
		}
		return logistics.LogisticsData{}, fmt.Errorf("failed to get logistics data: %w", err)
	}

	return l, nil
}

// List implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) List(ctx context.Context, filter logistics.LogisticsFilter) ([]logistics.LogisticsData, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT l.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil && *filter.Month != "" {
		where += fmt.Sprintf(" AND l.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM logistics_data l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count logistics data: %w", err)
	}

	column, dir := filter.Normalize(logistics.SortFields, logistics.DefaultSort)
	query := logisticsSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, l.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query logistics data: %w", err)
	}
	defer rows.Close()

	var result []logistics.LogisticsData
	for rows.Next() {
		l, err := scanLogistics(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan logistics data: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, total, nil
}

// Update implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) Update(ctx context.Context, req logistics.UpdateLogisticsRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE logistics_data SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Month != nil {
		query += fmt.Sprintf(", month = $%d", argIdx)
		args = append(args, *req.Month)
		argIdx++
	}
	if req.HousingDeduction != nil {
		query += fmt.Sprintf(", housing_deduction = $%d", argIdx)
		args = append(args, *req.HousingDeduction)
		argIdx++
	}
	if req.MealAllowance != nil {
		query += fmt.Sprintf(", meal_allowance = $%d", argIdx)
		args = append(args, *req.MealAllowance)
		argIdx++
	}
	if req.UtilitiesDeduction != nil {
		query += fmt.Sprintf(", utilities_deduction = $%d", argIdx)
		args = append(args, *req.UtilitiesDeduction)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_logistics_employee_month") {
			return logistics.ErrLogisticsExists
		}
		return fmt.Errorf("failed to update logistics data: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return logistics.ErrLogisticsNotFound
	}

	return nil
}

// SoftDelete implements logistics.LogisticsRepository.
func (r *logisticsRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE logistics_data SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete logistics data: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return logistics.ErrLogisticsNotFound
	}

	return nil
}
