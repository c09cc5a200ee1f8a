package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const socialSecuritySelect = `
	SELECT s.id, s.employee_id, s.month, s.pension, s.medical, s.unemployment, s.housing_fund,
	       s.is_deleted, s.created_at, s.updated_at, e.full_name
	FROM social_securities s
	LEFT JOIN employees e ON e.id = s.employee_id
`

type socialSecurityRepositoryImpl struct {
	db *database.DB
}

func NewSocialSecurityRepository(db *database.DB) socialsecurity.SocialSecurityRepository {
	return &socialSecurityRepositoryImpl{db: db}
}

func scanSocialSecurity(row pgx.Row) (socialsecurity.SocialSecurity, error) {
	var s socialsecurity.SocialSecurity
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.Month,
		&s.Pension,
		&s.Medical,
		&s.Unemployment,
		&s.HousingFund,
		&s.IsDeleted,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.EmployeeName,
	)
	return s, err
}

// Create implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) Create(ctx context.Context, s socialsecurity.SocialSecurity) (socialsecurity.SocialSecurity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO social_securities (employee_id, month, pension, medical, unemployment, housing_fund)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, s.EmployeeID, s.Month, s.Pension, s.Medical, s.Unemployment, s.HousingFund).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_social_securities_employee_month") {
			return socialsecurity.SocialSecurity{}, socialsecurity.ErrSocialSecurityExists
		}
		if isForeignKeyViolation(err) {
			return socialsecurity.SocialSecurity{}, employee.ErrEmployeeNotFound
		}
		return socialsecurity.SocialSecurity{}, fmt.Errorf("failed to create social security: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) GetByID(ctx context.Context, id int64) (socialsecurity.SocialSecurity, error) {
	return r.getOne(ctx, ` WHERE s.id = $1 AND NOT s.is_deleted`, id)
}

// GetByEmployeeMonth implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (socialsecurity.SocialSecurity, error) {
	return r.getOne(ctx, ` WHERE s.employee_id = $1 AND s.month = $2 AND NOT s.is_deleted`, employeeID, month)
}

func (r *socialSecurityRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (socialsecurity.SocialSecurity, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSocialSecurity(q.QueryRow(ctx, socialSecuritySelect+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return socialsecurity.SocialSecurity{}, socialsecurity.ErrSocialSecurityNotFound
		}
		return socialsecurity.SocialSecurity{}, fmt.Errorf("failed to get social security: %w", err)
	}

	return s, nil
}

// List implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) List(ctx context.Context, filter socialsecurity.SocialSecurityFilter) ([]socialsecurity.SocialSecurity, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "NOT s.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil && *filter.Month != "" {
		where += fmt.Sprintf(" AND s.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Keyword != "" {
		where += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM social_securities s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count social security: %w", err)
	}

	column, dir := filter.Normalize(socialsecurity.SortFields, socialsecurity.DefaultSort)
	query := socialSecuritySelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY %s %s, s.id %s
		LIMIT $%d OFFSET $%d
	`, where, column, dir, dir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query social security: %w", err)
	}
	defer rows.Close()

	var result []socialsecurity.SocialSecurity
	for rows.Next() {
		s, err := scanSocialSecurity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan social security: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, total, nil
}

// Update implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) Update(ctx context.Context, req socialsecurity.UpdateSocialSecurityRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE social_securities SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Month != nil {
		query += fmt.Sprintf(", month = $%d", argIdx)
		args = append(args, *req.Month)
		argIdx++
	}
	if req.Pension != nil {
		query += fmt.Sprintf(", pension = $%d", argIdx)
		args = append(args, *req.Pension)
		argIdx++
	}
	if req.Medical != nil {
		query += fmt.Sprintf(", medical = $%d", argIdx)
		args = append(args, *req.Medical)
		argIdx++
	}
	if req.Unemployment != nil {
		query += fmt.Sprintf(", unemployment = $%d", argIdx)
		args = append(args, *req.Unemployment)
		argIdx++
	}
	if req.HousingFund != nil {
		query += fmt.Sprintf(", housing_fund = $%d", argIdx)
		args = append(args, *req.HousingFund)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND NOT is_deleted", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_social_securities_employee_month") {
			return socialsecurity.ErrSocialSecurityExists
		}
		return fmt.Errorf("failed to update social security: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return socialsecurity.ErrSocialSecurityNotFound
	}

	return nil
}

// SoftDelete implements socialsecurity.SocialSecurityRepository.
func (r *socialSecurityRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE social_securities SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete social security: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return socialsecurity.ErrSocialSecurityNotFound
	}

	return nil
}
