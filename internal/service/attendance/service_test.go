package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendances struct {
	attendance.AttendanceRepository
	rows      map[int64]attendance.Attendance
	listCalls int
}

func (f *fakeAttendances) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.rows {
		if existing.EmployeeID == a.EmployeeID && existing.WorkDate.Equal(a.WorkDate) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
	}
	a.ID = int64(len(f.rows) + 1)
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAttendances) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	f.listCalls++
	var out []attendance.Attendance
	for _, a := range f.rows {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendances) SoftDelete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
}

func (fakeEmployees) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	if id != 1 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: 1, EmployeeNo: "E001"}, nil
}

func hours(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestAttendanceService_Create(t *testing.T) {
	repo := &fakeAttendances{rows: map[int64]attendance.Attendance{}}
	svc := NewAttendanceService(repo, fakeEmployees{}, cache.New(cache.NewMemoryStore(), cache.NewMemoryVersions()), time.Minute)
	ctx := context.Background()

	req := attendance.CreateAttendanceRequest{
		EmployeeID:    1,
		WorkDate:      "2024-05-06",
		HoursWorked:   hours(8),
		OvertimeHours: hours(2),
		AbsentHours:   hours(0),
	}

	created, err := svc.CreateAttendance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", created.WorkDate)
	assert.True(t, created.OvertimeHours.Equal(hours(2)))

	_, err = svc.CreateAttendance(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	missing := req
	missing.EmployeeID = 2
	_, err = svc.CreateAttendance(ctx, missing)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_CreateValidatesHours(t *testing.T) {
	repo := &fakeAttendances{rows: map[int64]attendance.Attendance{}}
	svc := NewAttendanceService(repo, fakeEmployees{}, nil, time.Minute)

	tests := []struct {
		name  string
		req   attendance.CreateAttendanceRequest
		field string
	}{
		{
			name:  "overtime above a day",
			req:   attendance.CreateAttendanceRequest{EmployeeID: 1, WorkDate: "2024-05-06", OvertimeHours: hours(25)},
			field: "overtimeHours",
		},
		{
			name:  "negative absence",
			req:   attendance.CreateAttendanceRequest{EmployeeID: 1, WorkDate: "2024-05-06", AbsentHours: hours(-1)},
			field: "absentHours",
		},
		{
			name:  "malformed date",
			req:   attendance.CreateAttendanceRequest{EmployeeID: 1, WorkDate: "06/05/2024"},
			field: "workDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAttendance(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
	assert.Empty(t, repo.rows)
}

func TestAttendanceService_DeleteInvalidatesList(t *testing.T) {
	repo := &fakeAttendances{rows: map[int64]attendance.Attendance{
		1: {ID: 1, EmployeeID: 1, WorkDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewAttendanceService(repo, fakeEmployees{}, cache.New(cache.NewMemoryStore(), cache.NewMemoryVersions()), time.Minute)
	ctx := context.Background()

	page, err := svc.ListAttendances(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	require.NoError(t, svc.DeleteAttendance(ctx, 1))
	assert.ErrorIs(t, svc.DeleteAttendance(ctx, 1), attendance.ErrAttendanceNotFound)

	page, err = svc.ListAttendances(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, repo.listCalls)
}
