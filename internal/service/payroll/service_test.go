package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMonth = "2024-05"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestServices(s *store) (payroll.PayrollService, payroll.PayrollItemService) {
	tx := fakeTransactor{}
	payrollRepo := fakePayrollRepo{s: s}
	itemRepo := fakeItemRepo{s: s}

	payrollService := NewPayrollService(
		tx,
		payrollRepo,
		itemRepo,
		fakeEmployeeRepo{s: s},
		fakeAttendanceRepo{s: s},
		fakeLogisticsRepo{s: s},
		fakeSocialSecurityRepo{s: s},
		config.PayrollConfig{OvertimeFactor: dec("1.5"), Workers: 4},
	)
	return payrollService, NewPayrollItemService(tx, payrollRepo, itemRepo)
}

func workDay(employeeID int64, day string, overtime, absent string) attendance.Attendance {
	date, _ := time.Parse("2006-01-02", day)
	return attendance.Attendance{
		EmployeeID:    employeeID,
		WorkDate:      date,
		HoursWorked:   dec("8"),
		OvertimeHours: dec(overtime),
		AbsentHours:   dec(absent),
	}
}

func findItem(t *testing.T, items []payroll.PayrollItemResponse, name string) payroll.PayrollItemResponse {
	t.Helper()
	for _, item := range items {
		if item.ItemName == name {
			return item
		}
	}
	t.Fatalf("item %q not found", name)
	return payroll.PayrollItemResponse{}
}

func TestGenerateDrafts_OvertimeExample(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.attendances = append(s.attendances,
		workDay(1, "2024-05-06", "2", "0"),
		workDay(1, "2024-04-30", "10", "8"), // previous month, ignored
	)
	svc, _ := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	require.Len(t, result.Payrolls, 1)

	p := result.Payrolls[0]
	assert.Equal(t, payroll.StatusDraft, p.Status)
	assert.Equal(t, "137.93", findItem(t, p.Items, "Overtime").Amount.StringFixed(2))
	assert.True(t, findItem(t, p.Items, "AbsentDeduction").Amount.IsZero())
	assert.True(t, p.NetAmount.Equal(p.GrossAmount.Sub(p.Deductions)))
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failures)
}

func TestGenerateDrafts_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	svc, _ := newTestServices(s)

	first, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	assert.Len(t, first.Payrolls, 2)

	second, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	assert.Empty(t, second.Payrolls)
	assert.Equal(t, []int64{1, 2}, second.Skipped)
	assert.Len(t, s.livePayrolls(), 2)
}

func TestGenerateDrafts_SkipExisting(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	svc, _ := newTestServices(s)

	manual, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID:  1,
		Month:       testMonth,
		GrossAmount: dec("1234.56"),
		Deductions:  dec("34.56"),
	})
	require.NoError(t, err)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	require.Len(t, result.Payrolls, 1)
	assert.Equal(t, int64(2), result.Payrolls[0].EmployeeID)
	assert.Equal(t, []int64{1}, result.Skipped)

	untouched, err := svc.GetPayroll(ctx, manual.ID)
	require.NoError(t, err)
	assert.True(t, untouched.GrossAmount.Equal(dec("1234.56")))
	assert.True(t, untouched.NetAmount.Equal(dec("1200")))
}

func TestGenerateDrafts_EmployeeSubsetAndInactive(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	s.addEmployee(3, "5000")
	inactive := s.employees[3]
	inactive.IsActive = false
	s.employees[3] = inactive
	svc, _ := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth, EmployeeIDs: []int64{2, 3}})
	require.NoError(t, err)
	require.Len(t, result.Payrolls, 1)
	assert.Equal(t, int64(2), result.Payrolls[0].EmployeeID)
}

func TestGenerateDrafts_AllSources(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8700")
	s.logistics[monthKey{1, testMonth}] = logistics.LogisticsData{
		EmployeeID:         1,
		Month:              testMonth,
		HousingDeduction:   dec("500"),
		MealAllowance:      dec("700"),
		UtilitiesDeduction: dec("100"),
	}
	svc, _ := newTestServices(s)

	factor := dec("2")
	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth, OvertimeFactor: &factor})
	require.NoError(t, err)
	require.Len(t, result.Payrolls, 1)

	p := result.Payrolls[0]
	assert.True(t, p.GrossAmount.Equal(dec("9400")), p.GrossAmount.String())
	assert.True(t, p.Deductions.Equal(dec("600")), p.Deductions.String())
	assert.True(t, p.NetAmount.Equal(dec("8800")), p.NetAmount.String())
	assert.Len(t, p.Items, 6)
	assert.Equal(t, "Fixed", p.Items[0].ItemType)
	assert.True(t, findItem(t, p.Items, "HousingDeduction").Amount.Equal(dec("-500")))
}

func TestGenerateDrafts_IsolatedFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	s.addEmployee(3, "5000")
	s.failItemsFor[2] = true
	svc, _ := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)

	require.Len(t, result.Payrolls, 2)
	assert.Equal(t, int64(1), result.Payrolls[0].EmployeeID)
	assert.Equal(t, int64(3), result.Payrolls[1].EmployeeID)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(2), result.Failures[0].EmployeeID)
	assert.Equal(t, "An unexpected error occurred", result.Failures[0].Error)
	assert.NotContains(t, result.Failures[0].Error, errInjected.Error())

	for _, p := range s.livePayrolls() {
		assert.NotEqual(t, int64(2), p.EmployeeID, "failed employee must not keep a partial payroll")
	}
}

func TestFailureMessage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "missing employee", err: fmt.Errorf("load employee: %w", employee.ErrEmployeeNotFound), want: "load employee: employee not found"},
		{name: "lifecycle", err: payroll.ErrItemsLocked, want: "items locked when not Draft"},
		{name: "store failure", err: errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), want: "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(ctx, 1, tt.err))
		})
	}
}

func TestGenerateDrafts_AtomicRollsBackBatch(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	s.addEmployee(3, "5000")
	s.failItemsFor[2] = true
	svc, _ := newTestServices(s)

	_, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth, Atomic: true})
	assert.ErrorIs(t, err, errInjected)
	assert.Empty(t, s.livePayrolls())
	assert.Empty(t, s.items)
}

func TestGenerateDrafts_AtomicSkipsExisting(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	svc, _ := newTestServices(s)

	_, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth, EmployeeIDs: []int64{1}})
	require.NoError(t, err)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth, Atomic: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Skipped)
	require.Len(t, result.Payrolls, 1)
	assert.Equal(t, int64(2), result.Payrolls[0].EmployeeID)
}

func TestGenerateDrafts_ConcurrentCallsCreateOnePayrollPerEmployee(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	for id := int64(1); id <= 20; id++ {
		s.addEmployee(id, "5000")
	}
	svc, _ := newTestServices(s)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	perEmployee := make(map[int64]int)
	for _, p := range s.livePayrolls() {
		perEmployee[p.EmployeeID]++
	}
	assert.Len(t, perEmployee, 20)
	for id, count := range perEmployee {
		assert.Equal(t, 1, count, "employee %d", id)
	}
}

func TestGenerateDrafts_Validation(t *testing.T) {
	svc, _ := newTestServices(newStore())

	_, err := svc.GenerateDrafts(context.Background(), payroll.GenerateRequest{Month: "2024-13"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	zero := decimal.Zero
	_, err = svc.GenerateDrafts(context.Background(), payroll.GenerateRequest{Month: testMonth, OvertimeFactor: &zero})
	assert.ErrorAs(t, err, &verrs)
}

func TestGenerateDrafts_Cancelled(t *testing.T) {
	s := newStore()
	s.addEmployee(1, "8000")
	svc, _ := newTestServices(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.livePayrolls())
}

func TestPayrollLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	svc, _ := newTestServices(s)

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: 1, Month: testMonth, GrossAmount: dec("1000"), Deductions: dec("100")})
	require.NoError(t, err)
	assert.True(t, created.NetAmount.Equal(dec("900")))

	_, err = svc.PayPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrOnlyConfirmedPayable)

	confirmed, err := svc.ConfirmPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusConfirmed, confirmed.Status)

	_, err = svc.ConfirmPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrOnlyDraftConfirmable)

	gross := dec("2000")
	_, err = svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: created.ID, GrossAmount: &gross})
	assert.ErrorIs(t, err, payroll.ErrOnlyDraftUpdatable)

	assert.ErrorIs(t, svc.DeletePayroll(ctx, created.ID), payroll.ErrOnlyDraftDeletable)

	paid, err := svc.PayPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, paid.Status)

	_, err = svc.PayPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrOnlyConfirmedPayable)
	_, err = svc.ConfirmPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrOnlyDraftConfirmable)

	final, err := svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, final.Status)
	assert.True(t, final.GrossAmount.Equal(dec("1000")))
}

func TestCreatePayroll_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	svc, _ := newTestServices(s)

	req := payroll.CreatePayrollRequest{EmployeeID: 1, Month: testMonth, GrossAmount: dec("1000")}
	_, err := svc.CreatePayroll(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreatePayroll(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
}

func TestUpdatePayroll_RecomputesNet(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	svc, _ := newTestServices(s)

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: 1, Month: testMonth, GrossAmount: dec("1000"), Deductions: dec("100")})
	require.NoError(t, err)

	deductions := dec("250.5")
	updated, err := svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: created.ID, Deductions: &deductions})
	require.NoError(t, err)
	assert.True(t, updated.GrossAmount.Equal(dec("1000")))
	assert.True(t, updated.NetAmount.Equal(dec("749.5")))
}

func TestDeletePayroll_SoftDeletesItems(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	svc, _ := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	id := result.Payrolls[0].ID

	require.NoError(t, svc.DeletePayroll(ctx, id))

	_, err = svc.GetPayroll(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
	assert.Empty(t, s.liveItems(id))

	// the month is free again once the draft is gone
	again, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	assert.Len(t, again.Payrolls, 1)
}

func TestPayrollItems_DraftLock(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	svc, items := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	p := result.Payrolls[0]

	bonus, err := items.CreateItem(ctx, payroll.CreateItemRequest{PayrollID: p.ID, ItemType: payroll.ItemTypeBonus, ItemName: "Spot bonus", Amount: dec("300")})
	require.NoError(t, err)
	assert.Equal(t, len(p.Items)+1, bonus.SortOrder)

	amount := dec("350")
	updated, err := items.UpdateItem(ctx, payroll.UpdateItemRequest{ID: bonus.ID, PayrollID: p.ID, Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))

	// item edits do not touch the totals
	current, err := svc.GetPayroll(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, current.GrossAmount.Equal(p.GrossAmount))

	_, err = svc.ConfirmPayroll(ctx, p.ID)
	require.NoError(t, err)

	_, err = items.CreateItem(ctx, payroll.CreateItemRequest{PayrollID: p.ID, ItemType: payroll.ItemTypeOther, ItemName: "Late", Amount: dec("1")})
	assert.ErrorIs(t, err, payroll.ErrItemsLocked)
	_, err = items.UpdateItem(ctx, payroll.UpdateItemRequest{ID: bonus.ID, PayrollID: p.ID, Amount: &amount})
	assert.ErrorIs(t, err, payroll.ErrItemsLocked)
	assert.ErrorIs(t, items.DeleteItem(ctx, p.ID, bonus.ID), payroll.ErrItemsLocked)

	listed, err := items.ListItems(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, listed, len(p.Items)+1)
}

func TestPayrollItems_WrongPayroll(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	s.addEmployee(2, "6000")
	svc, items := newTestServices(s)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	require.Len(t, result.Payrolls, 2)
	first, second := result.Payrolls[0], result.Payrolls[1]

	assert.ErrorIs(t, items.DeleteItem(ctx, second.ID, first.Items[0].ID), payroll.ErrPayrollItemNotFound)
	require.NoError(t, items.DeleteItem(ctx, first.ID, first.Items[0].ID))
	assert.ErrorIs(t, items.DeleteItem(ctx, first.ID, first.Items[0].ID), payroll.ErrPayrollItemNotFound)

	_, err = items.ListItems(ctx, 999)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}
