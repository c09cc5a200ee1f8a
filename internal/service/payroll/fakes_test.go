package payroll

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/shopspring/decimal"
)

// journal collects undo steps for one fake transaction
type journal struct {
	undo []func()
}

type journalKey struct{}

// fakeTransactor mimics nested transactions: a failing unit undoes its own
// writes, a committed nested unit hands its undo steps to the parent.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		return err
	}
	if parent, ok := ctx.Value(journalKey{}).(*journal); ok {
		parent.undo = append(parent.undo, j.undo...)
	}
	return nil
}

func onRollback(ctx context.Context, fn func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, fn)
	}
}

type monthKey struct {
	employeeID int64
	month      string
}

var errInjected = errors.New("injected failure")

type store struct {
	mu            sync.Mutex
	nextPayrollID int64
	nextItemID    int64
	employees     map[int64]employee.Employee
	attendances   []attendance.Attendance
	logistics     map[monthKey]logistics.LogisticsData
	social        map[monthKey]socialsecurity.SocialSecurity
	payrolls      map[int64]payroll.Payroll
	items         map[int64]payroll.PayrollItem
	// failItemsFor makes CreateBatch fail for these employees
	failItemsFor map[int64]bool
}

func newStore() *store {
	return &store{
		employees:    make(map[int64]employee.Employee),
		logistics:    make(map[monthKey]logistics.LogisticsData),
		social:       make(map[monthKey]socialsecurity.SocialSecurity),
		payrolls:     make(map[int64]payroll.Payroll),
		items:        make(map[int64]payroll.PayrollItem),
		failItemsFor: make(map[int64]bool),
	}
}

func (s *store) addEmployee(id int64, baseSalary string) {
	s.employees[id] = employee.Employee{
		ID:           id,
		EmployeeNo:   "E" + decimal.NewFromInt(id).String(),
		FullName:     "Employee " + decimal.NewFromInt(id).String(),
		DepartmentID: 1,
		BaseSalary:   decimal.RequireFromString(baseSalary),
		IsActive:     true,
	}
}

func (s *store) livePayrolls() []payroll.Payroll {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payroll.Payroll
	for _, p := range s.payrolls {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) liveItems(payrollID int64) []payroll.PayrollItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []payroll.PayrollItem
	for _, i := range s.items {
		if i.PayrollID == payrollID && !i.IsDeleted {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].SortOrder < out[b].SortOrder })
	return out
}

// ---- employees ----

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	s *store
}

func (r fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok || e.IsDeleted {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r fakeEmployeeRepo) ListActive(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.IsDeleted || !e.IsActive {
			continue
		}
		if len(ids) > 0 && !wanted[e.ID] {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- monthly inputs ----

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	s *store
}

func (r fakeAttendanceRepo) ListByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && !a.WorkDate.Before(from) && a.WorkDate.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLogisticsRepo struct {
	logistics.LogisticsRepository
	s *store
}

func (r fakeLogisticsRepo) GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (logistics.LogisticsData, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.logistics[monthKey{employeeID, month}]
	if !ok {
		return logistics.LogisticsData{}, logistics.ErrLogisticsNotFound
	}
	return l, nil
}

type fakeSocialSecurityRepo struct {
	socialsecurity.SocialSecurityRepository
	s *store
}

func (r fakeSocialSecurityRepo) GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (socialsecurity.SocialSecurity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ss, ok := r.s.social[monthKey{employeeID, month}]
	if !ok {
		return socialsecurity.SocialSecurity{}, socialsecurity.ErrSocialSecurityNotFound
	}
	return ss, nil
}

// ---- payrolls ----

type fakePayrollRepo struct {
	payroll.PayrollRepository
	s *store
}

// Create enforces one live payroll per employee and month, like the unique index
func (r fakePayrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payrolls {
		if !existing.IsDeleted && existing.EmployeeID == p.EmployeeID && existing.Month == p.Month {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
	}
	r.s.nextPayrollID++
	p.ID = r.s.nextPayrollID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.payrolls[p.ID] = p

	id := p.ID
	onRollback(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		delete(r.s.payrolls, id)
	})
	return p, nil
}

func (r fakePayrollRepo) GetByID(ctx context.Context, id int64) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payrolls[id]
	if !ok || p.IsDeleted {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (r fakePayrollRepo) GetByIDForUpdate(ctx context.Context, id int64) (payroll.Payroll, error) {
	return r.GetByID(ctx, id)
}

func (r fakePayrollRepo) ExistsForEmployeeMonth(ctx context.Context, employeeID int64, month string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payrolls {
		if !p.IsDeleted && p.EmployeeID == employeeID && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (r fakePayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	all := r.s.livePayrolls()
	return all, int64(len(all)), nil
}

func (r fakePayrollRepo) update(ctx context.Context, id int64, fn func(p *payroll.Payroll)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payrolls[id]
	if !ok || p.IsDeleted {
		return payroll.ErrPayrollNotFound
	}
	before := p
	fn(&p)
	p.UpdatedAt = time.Now()
	r.s.payrolls[id] = p
	onRollback(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		r.s.payrolls[id] = before
	})
	return nil
}

func (r fakePayrollRepo) UpdateTotals(ctx context.Context, id int64, gross, deductions, net decimal.Decimal) error {
	return r.update(ctx, id, func(p *payroll.Payroll) {
		p.GrossAmount, p.Deductions, p.NetAmount = gross, deductions, net
	})
}

func (r fakePayrollRepo) UpdateStatus(ctx context.Context, id int64, status payroll.Status) error {
	return r.update(ctx, id, func(p *payroll.Payroll) { p.Status = status })
}

func (r fakePayrollRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.update(ctx, id, func(p *payroll.Payroll) { p.IsDeleted = true })
}

// ---- items ----

type fakeItemRepo struct {
	payroll.PayrollItemRepository
	s *store
}

func (r fakeItemRepo) CreateBatch(ctx context.Context, payrollID int64, items []payroll.PayrollItem) ([]payroll.PayrollItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failItemsFor[r.s.payrolls[payrollID].EmployeeID] {
		return nil, errInjected
	}

	created := make([]payroll.PayrollItem, 0, len(items))
	for _, item := range items {
		r.s.nextItemID++
		item.ID = r.s.nextItemID
		item.PayrollID = payrollID
		r.s.items[item.ID] = item
		created = append(created, item)

		id := item.ID
		onRollback(ctx, func() {
			r.s.mu.Lock()
			defer r.s.mu.Unlock()
			delete(r.s.items, id)
		})
	}
	return created, nil
}

func (r fakeItemRepo) Create(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.SortOrder == 0 {
		for _, existing := range r.s.items {
			if existing.PayrollID == item.PayrollID && !existing.IsDeleted && existing.SortOrder >= item.SortOrder {
				item.SortOrder = existing.SortOrder
			}
		}
		item.SortOrder++
	}
	r.s.nextItemID++
	item.ID = r.s.nextItemID
	r.s.items[item.ID] = item
	return item, nil
}

func (r fakeItemRepo) GetByID(ctx context.Context, id int64) (payroll.PayrollItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok || item.IsDeleted {
		return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
	}
	return item, nil
}

func (r fakeItemRepo) ListByPayroll(ctx context.Context, payrollID int64) ([]payroll.PayrollItem, error) {
	return r.s.liveItems(payrollID), nil
}

func (r fakeItemRepo) Update(ctx context.Context, req payroll.UpdateItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[req.ID]
	if !ok || item.IsDeleted || item.PayrollID != req.PayrollID {
		return payroll.ErrPayrollItemNotFound
	}
	if req.ItemType != nil {
		item.ItemType = *req.ItemType
	}
	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Amount != nil {
		item.Amount = *req.Amount
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	r.s.items[req.ID] = item
	return nil
}

func (r fakeItemRepo) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok || item.IsDeleted {
		return payroll.ErrPayrollItemNotFound
	}
	item.IsDeleted = true
	r.s.items[id] = item
	return nil
}

func (r fakeItemRepo) SoftDeleteByPayroll(ctx context.Context, payrollID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, item := range r.s.items {
		if item.PayrollID == payrollID {
			item.IsDeleted = true
			r.s.items[id] = item
		}
	}
	return nil
}
