package report

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var workbookHeaders = []string{"Employee No", "Employee Name", "Department", "Month", "Gross", "Deductions", "Net", "Status"}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// renderPayrollWorkbook writes one sheet with a row per payroll and a totals row
func renderPayrollWorkbook(month string, payrolls []payroll.Payroll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for i, header := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	var gross, deductions, net decimal.Decimal
	row := 2
	for _, p := range payrolls {
		values := []interface{}{
			deref(p.EmployeeNo),
			deref(p.EmployeeName),
			deref(p.DepartmentName),
			p.Month,
			p.GrossAmount.InexactFloat64(),
			p.Deductions.InexactFloat64(),
			p.NetAmount.InexactFloat64(),
			string(p.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}

		gross = gross.Add(p.GrossAmount)
		deductions = deductions.Add(p.Deductions)
		net = net.Add(p.NetAmount)
		row++
	}

	totals := []interface{}{"Total", "", "", month, gross.InexactFloat64(), deductions.InexactFloat64(), net.InexactFloat64(), ""}
	totalCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, totalCell, &totals); err != nil {
		return nil, err
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(workbookHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return nil, err
	}
	lastTotal, _ := excelize.CoordinatesToCellName(len(workbookHeaders), row)
	if err := f.SetCellStyle(sheet, totalCell, lastTotal, bold); err != nil {
		return nil, err
	}
	moneyEnd, _ := excelize.CoordinatesToCellName(7, row)
	if err := f.SetCellStyle(sheet, "E2", moneyEnd, money); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "C", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
