package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const employeeSelect = `
	SELECT
		e.id, e.employee_no, e.full_name, e.gender, e.department_id, e.workshop_id,
		e.hire_date, e.base_salary, e.is_active, e.is_deleted, e.created_at, e.updated_at,
		d.name AS department_name,
		w.name AS workshop_name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN workshops w ON w.id = e.workshop_id
`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeNo,
		&e.FullName,
		&e.Gender,
		&e.DepartmentID,
		&e.WorkshopID,
		&e.HireDate,
		&e.BaseSalary,
		&e.IsActive,
		&e.IsDeleted,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DepartmentName,
		&e.WorkshopName,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (employee_no, full_name, gender, department_id, workshop_id, hire_date, base_salary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		e.EmployeeNo, e.FullName, e.Gender, e.DepartmentID, e.WorkshopID, e.HireDate, e.BaseSalary, e.IsActive,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_employees_employee_no") {
			return employee.Employee{}, employee.ErrEmployeeNoExists
		}
		if isForeignKeyViolation(err) {
			return employee.Employee{}, department.ErrDepartmentNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND NOT e.is_deleted`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND NOT e.is_deleted FOR UPDATE OF e`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to lock employee: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT e.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND (e.employee_no ILIKE $%d OR e.full_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Keyword+"%")
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
	if filter.IsActive != nil {
		where += fmt.Sprintf(" AND e.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	column, dir := filter.Normalize(employee.SortFields, employee.DefaultSort)
	query := employeeSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, e.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	employees, err := r.queryEmployees(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE NOT e.is_deleted AND e.is_active`
	args := []interface{}{}
	if len(ids) > 0 {
		query += ` AND e.id = ANY($1)`
		args = append(args, ids)
	}
	query += ` ORDER BY e.id`

	return r.queryEmployees(ctx, q, query, args...)
}

func (r *employeeRepositoryImpl) queryEmployees(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		query += fmt.Sprintf(", %s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if req.EmployeeNo != nil {
		set("employee_no", *req.EmployeeNo)
	}
	if req.FullName != nil {
		set("full_name", *req.FullName)
	}
	if req.Gender != nil {
		set("gender", *req.Gender)
	}
	if req.DepartmentID != nil {
		set("department_id", *req.DepartmentID)
	}
	if req.WorkshopID != nil {
		set("workshop_id", *req.WorkshopID)
	}
	if req.HireDate != nil {
		set("hire_date", *req.HireDate)
	}
	if req.IsActive != nil {
		set("is_active", *req.IsActive)
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_employees_employee_no") {
			return employee.ErrEmployeeNoExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateBaseSalary implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateBaseSalary(ctx context.Context, id int64, baseSalary decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE employees SET base_salary = $1, updated_at = NOW() WHERE id = $2 AND NOT is_deleted`, baseSalary, id)
	if err != nil {
		return fmt.Errorf("failed to update base salary: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET is_deleted = TRUE, is_active = FALSE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
