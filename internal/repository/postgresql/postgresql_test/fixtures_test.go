package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orgFixture struct {
	department department.Department
	workshop   workshop.Workshop
	employees  []employee.Employee
}

// seedOrg creates one department with one workshop and the given employee numbers
func seedOrg(t *testing.T, db *database.DB, deptName string, employeeNos ...string) orgFixture {
	t.Helper()
	ctx := context.Background()

	dept, err := postgresql.NewDepartmentRepository(db).Create(ctx, department.Department{Name: deptName})
	require.NoError(t, err)

	ws, err := postgresql.NewWorkshopRepository(db).Create(ctx, workshop.Workshop{Name: deptName + " Line 1", DepartmentID: dept.ID})
	require.NoError(t, err)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	fixture := orgFixture{department: dept, workshop: ws}
	for _, no := range employeeNos {
		e, err := employeeRepo.Create(ctx, employee.Employee{
			EmployeeNo:   no,
			FullName:     "Employee " + no,
			Gender:       employee.GenderFemale,
			DepartmentID: dept.ID,
			WorkshopID:   &ws.ID,
			HireDate:     time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
			BaseSalary:   decimal.NewFromInt(6000),
			IsActive:     true,
		})
		require.NoError(t, err)
		fixture.employees = append(fixture.employees, e)
	}
	return fixture
}
