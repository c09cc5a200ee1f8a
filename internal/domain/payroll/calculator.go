package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/shopspring/decimal"
)

var (
	// WorkingDaysPerMonth is the average month length used to derive an hourly rate
	WorkingDaysPerMonth = decimal.RequireFromString("21.75")
	HoursPerDay         = decimal.NewFromInt(8)

	DefaultOvertimeFactor = decimal.RequireFromString("1.5")
)

// Inputs are the upstream facts of one employee for one month
type Inputs struct {
	BaseSalary     decimal.Decimal
	Attendances    []attendance.Attendance
	Logistics      *logistics.LogisticsData
	SocialSecurity *socialsecurity.SocialSecurity
	OvertimeFactor decimal.Decimal
}

// Draft is the computed payroll before persistence
type Draft struct {
	GrossAmount decimal.Decimal
	Deductions  decimal.Decimal
	NetAmount   decimal.Decimal
	Items       []PayrollItem
}

// HourlyRate is baseSalary / 21.75 / 8
func HourlyRate(baseSalary decimal.Decimal) decimal.Decimal {
	return baseSalary.Div(WorkingDaysPerMonth).Div(HoursPerDay)
}

// Calculate aggregates the inputs into totals and line items. Line amounts
// derived from attendance are rounded to cents; the totals keep the full
// precision of their operands. Deductions are stored as negative items.
func Calculate(in Inputs) Draft {
	var overtimeHours, absentHours decimal.Decimal
	for _, a := range in.Attendances {
		overtimeHours = overtimeHours.Add(a.OvertimeHours)
		absentHours = absentHours.Add(a.AbsentHours)
	}

	hourly := HourlyRate(in.BaseSalary)
	overtimePay := overtimeHours.Mul(hourly).Mul(in.OvertimeFactor)
	absentDeduction := absentHours.Mul(hourly)

	gross := in.BaseSalary.Add(overtimePay)
	deductions := absentDeduction

	items := []PayrollItem{
		{ItemType: ItemTypeFixed, ItemName: "BaseSalary", Amount: in.BaseSalary},
		{ItemType: ItemTypeAttendance, ItemName: "Overtime", Amount: overtimePay.RoundBank(2)},
		{ItemType: ItemTypeAttendance, ItemName: "AbsentDeduction", Amount: absentDeduction.Neg().RoundBank(2)},
	}

	if l := in.Logistics; l != nil {
		gross = gross.Add(l.MealAllowance)
		deductions = deductions.Add(l.HousingDeduction).Add(l.UtilitiesDeduction)
		items = append(items,
			PayrollItem{ItemType: ItemTypeLogistics, ItemName: "MealAllowance", Amount: l.MealAllowance},
			PayrollItem{ItemType: ItemTypeLogistics, ItemName: "HousingDeduction", Amount: l.HousingDeduction.Neg()},
			PayrollItem{ItemType: ItemTypeLogistics, ItemName: "UtilitiesDeduction", Amount: l.UtilitiesDeduction.Neg()},
		)
	}

	if s := in.SocialSecurity; s != nil {
		deductions = deductions.Add(s.Pension).Add(s.Medical).Add(s.Unemployment).Add(s.HousingFund)
		items = append(items,
			PayrollItem{ItemType: ItemTypeSocialSecurity, ItemName: "Pension", Amount: s.Pension.Neg()},
			PayrollItem{ItemType: ItemTypeSocialSecurity, ItemName: "Medical", Amount: s.Medical.Neg()},
			PayrollItem{ItemType: ItemTypeSocialSecurity, ItemName: "Unemployment", Amount: s.Unemployment.Neg()},
			PayrollItem{ItemType: ItemTypeSocialSecurity, ItemName: "HousingFund", Amount: s.HousingFund.Neg()},
		)
	}

	for i := range items {
		items[i].SortOrder = i + 1
	}

	return Draft{
		GrossAmount: gross,
		Deductions:  deductions,
		NetAmount:   gross.Sub(deductions),
		Items:       items,
	}
}
