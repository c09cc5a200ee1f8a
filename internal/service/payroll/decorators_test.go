package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore(), cache.NewMemoryVersions())
}

func TestCachingPayrollService_InvalidatesOnMutation(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	core, _ := newTestServices(s)

	c := newMemoryCache()
	svc := NewCachingPayrollService(core, c, time.Minute)

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: 1, Month: testMonth, GrossAmount: dec("1000")})
	require.NoError(t, err)

	first, err := svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, first.Status)

	// a write behind the decorator's back stays invisible until a bump
	require.NoError(t, fakePayrollRepo{s: s}.UpdateStatus(ctx, created.ID, payroll.StatusPaid))
	stale, err := svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, stale.Status)

	require.NoError(t, fakePayrollRepo{s: s}.UpdateStatus(ctx, created.ID, payroll.StatusDraft))
	confirmed, err := svc.ConfirmPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusConfirmed, confirmed.Status)

	fresh, err := svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusConfirmed, fresh.Status)
}

func TestCachingPayrollService_FailedMutationKeepsVersion(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	core, _ := newTestServices(s)

	versions := cache.NewMemoryVersions()
	svc := NewCachingPayrollService(core, cache.New(cache.NewMemoryStore(), versions), time.Minute)

	_, err := svc.PayPayroll(ctx, 42)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)

	v, err := versions.Version(ctx, cache.ScopePayroll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	v, err = versions.Version(ctx, cache.ScopePayroll)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestCachingPayrollItemService_ListRefreshesAfterCreate(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	core, coreItems := newTestServices(s)

	result, err := core.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	payrollID := result.Payrolls[0].ID

	items := NewCachingPayrollItemService(coreItems, newMemoryCache(), time.Minute)

	before, err := items.ListItems(ctx, payrollID)
	require.NoError(t, err)

	_, err = items.CreateItem(ctx, payroll.CreateItemRequest{PayrollID: payrollID, ItemType: payroll.ItemTypeAllowance, ItemName: "Transport", Amount: dec("50")})
	require.NoError(t, err)

	after, err := items.ListItems(ctx, payrollID)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestLoggingPayrollService_WritesOneLinePerCall(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.addEmployee(1, "8000")
	core, coreItems := newTestServices(s)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := NewLoggingPayrollService(core, logger)
	items := NewLoggingPayrollItemService(coreItems, logger)

	result, err := svc.GenerateDrafts(ctx, payroll.GenerateRequest{Month: testMonth})
	require.NoError(t, err)
	_, err = svc.PayPayroll(ctx, result.Payrolls[0].ID)
	require.Error(t, err)
	require.NoError(t, items.DeleteItem(ctx, result.Payrolls[0].ID, result.Payrolls[0].Items[0].ID))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var generate, pay, deleteItem map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &generate))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &pay))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &deleteItem))

	assert.Equal(t, "OK", generate["msg"])
	assert.Equal(t, "payroll.GenerateDrafts", generate["method"])
	assert.Equal(t, "payroll", generate["service"])

	assert.Equal(t, "ERR", pay["msg"])
	assert.Equal(t, payroll.ErrOnlyConfirmedPayable.Error(), pay["error"])
	assert.Equal(t, "WARN", pay["level"])

	assert.Equal(t, "payrollItem.DeleteItem", deleteItem["method"])
	assert.Equal(t, "payroll_item", deleteItem["service"])
}
