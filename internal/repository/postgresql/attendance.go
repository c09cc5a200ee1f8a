package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.work_date, a.hours_worked, a.overtime_hours, a.absent_hours,
	       a.is_deleted, a.created_at, a.updated_at, e.full_name
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.WorkDate,
		&a.HoursWorked,
		&a.OvertimeHours,
		&a.AbsentHours,
		&a.IsDeleted,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, work_date, hours_worked, overtime_hours, absent_hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, a.EmployeeID, a.WorkDate, a.HoursWorked, a.OvertimeHours, a.AbsentHours).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_attendances_employee_date") {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		if isForeignKeyViolation(err) {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1 AND NOT a.is_deleted`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT a.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		where += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		where += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	column, dir := filter.Normalize(attendance.SortFields, attendance.DefaultSort)
	query := attendanceSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, a.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	attendances, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND NOT a.is_deleted
		  AND a.work_date >= $2 AND a.work_date < $3
		ORDER BY a.work_date
	`

	return r.query(ctx, q, query, employeeID, from, to)
}

func (r *attendanceRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return attendances, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE attendances SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.WorkDate != nil {
		query += fmt.Sprintf(", work_date = $%d", argIdx)
		args = append(args, *req.WorkDate)
		argIdx++
	}
	if req.HoursWorked != nil {
		query += fmt.Sprintf(", hours_worked = $%d", argIdx)
		args = append(args, *req.HoursWorked)
		argIdx++
	}
	if req.OvertimeHours != nil {
		query += fmt.Sprintf(", overtime_hours = $%d", argIdx)
		args = append(args, *req.OvertimeHours)
		argIdx++
	}
	if req.AbsentHours != nil {
		query += fmt.Sprintf(", absent_hours = $%d", argIdx)
		args = append(args, *req.AbsentHours)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_attendances_employee_date") {
			return attendance.ErrAttendanceExists
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// SoftDelete implements attendance.AttendanceRepository.
func (r *attendanceRepository) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE attendances SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
