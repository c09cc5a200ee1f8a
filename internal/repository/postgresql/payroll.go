package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const payrollSelect = `
	SELECT
		p.id, p.employee_id, p.month, p.gross_amount, p.deductions, p.net_amount, p.status,
		p.is_deleted, p.created_at, p.updated_at,
		e.employee_no, e.full_name, e.department_id, d.name, e.workshop_id
	FROM payrolls p
	LEFT JOIN employees e ON e.id = p.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.GrossAmount,
		&p.Deductions,
		&p.NetAmount,
		&p.Status,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeeNo,
		&p.EmployeeName,
		&p.DepartmentID,
		&p.DepartmentName,
		&p.WorkshopID,
	)
	return p, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (employee_id, month, gross_amount, deductions, net_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	status := p.Status
	if status == "" {
		status = payroll.StatusDraft
	}

	err := q.QueryRow(ctx, query, p.EmployeeID, p.Month, p.GrossAmount, p.Deductions, p.NetAmount, status).Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uk_payrolls_employee_month") {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return payroll.Payroll{}, employee.ErrEmployeeNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	p.Status = status

	return p, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id int64) (payroll.Payroll, error) {
	return r.getOne(ctx, payrollSelect+` WHERE p.id = $1 AND NOT p.is_deleted`, id)
}

// GetByIDForUpdate implements payroll.PayrollRepository.
func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id int64) (payroll.Payroll, error) {
	return r.getOne(ctx, payrollSelect+` WHERE p.id = $1 AND NOT p.is_deleted FOR UPDATE OF p`, id)
}

func (r *payrollRepository) getOne(ctx context.Context, query string, id int64) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// ExistsForEmployeeMonth implements payroll.PayrollRepository.
func (r *payrollRepository) ExistsForEmployeeMonth(ctx context.Context, employeeID int64, month string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM payrolls WHERE employee_id = $1 AND month = $2 AND NOT is_deleted)`
	if err := q.QueryRow(ctx, query, employeeID, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll existence: %w", err)
	}

	return exists, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT p.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil && *filter.Month != "" {
		where += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.WorkshopID != nil {
		where += fmt.Sprintf(" AND e.workshop_id = $%d", argIdx)
		args = append(args, *filter.WorkshopID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_no ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	column, dir := filter.Normalize(payroll.SortFields, payroll.DefaultSort)
	query := payrollSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, p.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	payrolls, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return payrolls, total, nil
}

// ListByMonth implements payroll.PayrollRepository.
func (r *payrollRepository) ListByMonth(ctx context.Context, month string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)
	return r.query(ctx, q, payrollSelect+` WHERE p.month = $1 AND NOT p.is_deleted ORDER BY e.employee_no, p.id`, month)
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)
	return r.query(ctx, q, payrollSelect+` WHERE p.employee_id = $1 AND NOT p.is_deleted ORDER BY p.month`, employeeID)
}

func (r *payrollRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.Payroll, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return payrolls, nil
}

// UpdateTotals implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateTotals(ctx context.Context, id int64, gross, deductions, net decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET gross_amount = $1, deductions = $2, net_amount = $3, updated_at = NOW()
		WHERE id = $4 AND NOT is_deleted
	`
	commandTag, err := q.Exec(ctx, query, gross, deductions, net, id)
	if err != nil {
		return fmt.Errorf("failed to update payroll totals: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id int64, status payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE payrolls SET status = $1, updated_at = NOW() WHERE id = $2 AND NOT is_deleted`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// SoftDelete implements payroll.PayrollRepository.
func (r *payrollRepository) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE payrolls SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}
