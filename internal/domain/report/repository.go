package report

import "context"

type ReportRepository interface {
	// PayrollSummary groups non-deleted payrolls by month, department and workshop
	PayrollSummary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error)
}
