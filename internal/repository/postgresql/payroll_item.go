package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollItemColumns = `id, payroll_id, item_type, item_name, amount, sort_order, is_deleted, created_at, updated_at`

type payrollItemRepository struct {
	db *database.DB
}

func NewPayrollItemRepository(db *database.DB) payroll.PayrollItemRepository {
	return &payrollItemRepository{db: db}
}

func scanPayrollItem(row pgx.Row) (payroll.PayrollItem, error) {
	var i payroll.PayrollItem
	err := row.Scan(&i.ID, &i.PayrollID, &i.ItemType, &i.ItemName, &i.Amount, &i.SortOrder, &i.IsDeleted, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// CreateBatch implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) CreateBatch(ctx context.Context, payrollID int64, items []payroll.PayrollItem) ([]payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_items (payroll_id, item_type, item_name, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + payrollItemColumns

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, payrollID, item.ItemType, item.ItemName, item.Amount, item.SortOrder)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]payroll.PayrollItem, 0, len(items))
	for range items {
		item, err := scanPayrollItem(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("failed to create payroll item: %w", err)
		}
		created = append(created, item)
	}

	return created, nil
}

// Create implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) Create(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_items (payroll_id, item_type, item_name, amount, sort_order)
		VALUES ($1, $2, $3, $4, CASE WHEN $5::INT > 0 THEN $5::INT ELSE (
			SELECT COALESCE(MAX(sort_order), 0) + 1 FROM payroll_items WHERE payroll_id = $1 AND NOT is_deleted
		) END)
		RETURNING ` + payrollItemColumns

	created, err := scanPayrollItem(q.QueryRow(ctx, query, item.PayrollID, item.ItemType, item.ItemName, item.Amount, item.SortOrder))
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.PayrollItem{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollItem{}, fmt.Errorf("failed to create payroll item: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) GetByID(ctx context.Context, id int64) (payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	item, err := scanPayrollItem(q.QueryRow(ctx, `SELECT `+payrollItemColumns+` FROM payroll_items WHERE id = $1 AND NOT is_deleted`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
		}
		return payroll.PayrollItem{}, fmt.Errorf("failed to get payroll item: %w", err)
	}

	return item, nil
}

// ListByPayroll implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) ListByPayroll(ctx context.Context, payrollID int64) ([]payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollItemColumns + ` FROM payroll_items WHERE payroll_id = $1 AND NOT is_deleted ORDER BY sort_order, id`
	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayrollItem
	for rows.Next() {
		item, err := scanPayrollItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// Update implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) Update(ctx context.Context, req payroll.UpdateItemRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_items SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.ItemType != nil {
		query += fmt.Sprintf(", item_type = $%d", argIdx)
		args = append(args, *req.ItemType)
		argIdx++
	}
	if req.ItemName != nil {
		query += fmt.Sprintf(", item_name = $%d", argIdx)
		args = append(args, *req.ItemName)
		argIdx++
	}
	if req.Amount != nil {
		query += fmt.Sprintf(", amount = $%d", argIdx)
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.SortOrder != nil {
		query += fmt.Sprintf(", sort_order = $%d", argIdx)
		args = append(args, *req.SortOrder)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND payroll_id = $%d AND NOT is_deleted", argIdx, argIdx+1)
	args = append(args, req.ID, req.PayrollID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payroll item: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollItemNotFound
	}

	return nil
}

// SoftDelete implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE payroll_items SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll item: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollItemNotFound
	}

	return nil
}

// SoftDeleteByPayroll implements payroll.PayrollItemRepository.
func (r *payrollItemRepository) SoftDeleteByPayroll(ctx context.Context, payrollID int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE payroll_items SET is_deleted = TRUE, updated_at = NOW() WHERE payroll_id = $1 AND NOT is_deleted`, payrollID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll items: %w", err)
	}

	return nil
}
