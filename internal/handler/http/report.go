package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Payroll totals per month, department and workshop
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)

	// Payrolls and bonuses of one employee
	GetEmployeeHistory(w http.ResponseWriter, r *http.Request)

	// Workbook download and archive
	ExportPayrolls(w http.ResponseWriter, r *http.Request)
	ArchivePayrolls(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetPayrollSummary handles GET /reports/summary
func (h *reportHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := report.SummaryFilter{
		Month:        q.String("month"),
		DepartmentID: q.Int64("departmentId"),
		WorkshopID:   q.Int64("workshopId"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.PayrollSummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GetEmployeeHistory handles GET /reports/employees/{id}/history
func (h *reportHandlerImpl) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	history, err := h.reportService.EmployeeHistory(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// ExportPayrolls handles GET /reports/payrolls/export
func (h *reportHandlerImpl) ExportPayrolls(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{Month: r.URL.Query().Get("month")}

	workbook, err := h.reportService.ExportPayrolls(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", report.WorkbookContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbook.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook.Content); err != nil {
		slog.Error("failed to stream workbook", "filename", workbook.Filename, "error", err)
	}
}

// ArchivePayrolls handles POST /reports/payrolls/export
func (h *reportHandlerImpl) ArchivePayrolls(w http.ResponseWriter, r *http.Request) {
	var req report.ExportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	archived, err := h.reportService.ArchivePayrolls(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll workbook archived", archived)
}
