package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const bonusSelect = `
	SELECT b.id, b.employee_id, b.year, b.amount, b.remark, b.is_deleted, b.created_at, b.updated_at, e.full_name
	FROM year_end_bonuses b
	LEFT JOIN employees e ON e.id = b.employee_id
`

type bonusRepositoryImpl struct {
	db *database.DB
}

func NewBonusRepository(db *database.DB) bonus.BonusRepository {
	return &bonusRepositoryImpl{db: db}
}

func scanBonus(row pgx.Row) (bonus.YearEndBonus, error) {
	var b bonus.YearEndBonus
	err := row.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.Amount, &b.Remark, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt, &b.EmployeeName)
	return b, err
}

// Create implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) Create(ctx context.Context, b bonus.YearEndBonus) (bonus.YearEndBonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO year_end_bonuses (employee_id, year, amount, remark)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	if err := q.QueryRow(ctx, query, b.EmployeeID, b.Year, b.Amount, b.Remark).Scan(&id); err != nil {
		if isUniqueViolation(err, "uk_year_end_bonuses_employee_year") {
			return bonus.YearEndBonus{}, bonus.ErrBonusExists
		}
		if isForeignKeyViolation(err) {
			return bonus.YearEndBonus{}, employee.ErrEmployeeNotFound
		}
		return bonus.YearEndBonus{}, fmt.Errorf("failed to create bonus: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) GetByID(ctx context.Context, id int64) (bonus.YearEndBonus, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBonus(q.QueryRow(ctx, bonusSelect+` WHERE b.id = $1 AND NOT b.is_deleted`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.YearEndBonus{}, bonus.ErrBonusNotFound
		}
		return bonus.YearEndBonus{}, fmt.Errorf("failed to get bonus: %w", err)
	}

	return b, nil
}

// List implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) List(ctx context.Context, filter bonus.BonusFilter) ([]bonus.YearEndBonus, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT b.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND b.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND b.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM year_end_bonuses b WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bonuses: %w", err)
	}

	column, dir := filter.Normalize(bonus.SortFields, bonus.DefaultSort)
	query := bonusSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, b.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	bonuses, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return bonuses, total, nil
}

// ListByEmployee implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]bonus.YearEndBonus, error) {
	q := GetQuerier(ctx, r.db)
	return r.query(ctx, q, bonusSelect+` WHERE b.employee_id = $1 AND NOT b.is_deleted ORDER BY b.year`, employeeID)
}

func (r *bonusRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]bonus.YearEndBonus, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []bonus.YearEndBonus
	for rows.Next() {
		b, err := scanBonus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return bonuses, nil
}

// Update implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) Update(ctx context.Context, req bonus.UpdateBonusRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE year_end_bonuses SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Year != nil {
		query += fmt.Sprintf(", year = $%d", argIdx)
		args = append(args, *req.Year)
		argIdx++
	}
	if req.Amount != nil {
		query += fmt.Sprintf(", amount = $%d", argIdx)
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.Remark != nil {
		query += fmt.Sprintf(", remark = $%d", argIdx)
		args = append(args, *req.Remark)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_year_end_bonuses_employee_year") {
			return bonus.ErrBonusExists
		}
		return fmt.Errorf("failed to update bonus: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return bonus.ErrBonusNotFound
	}

	return nil
}

// SoftDelete implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE year_end_bonuses SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bonus: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return bonus.ErrBonusNotFound
	}

	return nil
}
