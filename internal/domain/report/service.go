package report

import "context"

type ReportService interface {
	PayrollSummary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error)
	EmployeeHistory(ctx context.Context, employeeID int64) (EmployeeHistory, error)

	// ExportPayrolls renders the payrolls of a month as an xlsx workbook
	ExportPayrolls(ctx context.Context, req ExportRequest) (Workbook, error)

	// ArchivePayrolls renders the workbook and stores it in file storage
	ArchivePayrolls(ctx context.Context, req ExportRequest) (ArchiveResponse, error)
}
