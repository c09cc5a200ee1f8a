package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// PayrollSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) PayrollSummary(ctx context.Context, filter report.SummaryFilter) ([]report.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT p.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil && *filter.Month != "" {
		where += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
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
	}

	query := `
		SELECT
			p.month,
			d.id,
			d.name,
			w.id,
			w.name,
			COUNT(p.id),
			COALESCE(SUM(p.gross_amount), 0),
			COALESCE(SUM(p.deductions), 0),
			COALESCE(SUM(p.net_amount), 0)
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		JOIN departments d ON d.id = e.department_id
		LEFT JOIN workshops w ON w.id = e.workshop_id
		WHERE ` + where + `
		GROUP BY p.month, d.id, d.name, w.id, w.name
		ORDER BY p.month, d.name, w.name NULLS FIRST
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll summary: %w", err)
	}
	defer rows.Close()

	var result []report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		if err := rows.Scan(
			&row.Month,
			&row.DepartmentID,
			&row.DepartmentName,
			&row.WorkshopID,
			&row.WorkshopName,
			&row.Count,
			&row.GrossTotal,
			&row.DeductionsTotal,
			&row.NetTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll summary row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
