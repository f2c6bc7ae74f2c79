// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/plan"
)

type Repository interface {
	LockHR(ctx context.Context, email string) (*employee.Employee, error)
	Insert(ctx context.Context, p *Payment) error
	ApplyPackage(ctx context.Context, hrID string, pkg plan.Package) (int, error)
	ListByHR(ctx context.Context, email string, page core.PageParams) ([]Payment, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) LockHR(ctx context.Context, email string) (*employee.Employee, error) {
	query := `SELECT ` + employee.Columns + ` FROM employees WHERE email = $1 AND role = 'HR' FOR UPDATE`

	var e employee.Employee
	err := r.db.GetContext(ctx, &e, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock hr: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock hr: %w", err)
	}

	return &e, nil
}

func (r *repository) Insert(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (id, hr_email, transaction_id, amount, package_members, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.HREmail,
		p.TransactionID,
		p.Amount,
		p.PackageMembers,
		p.Status,
	).Scan(&p.CreatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert payment: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// ApplyPackage marks the HR paid, records the purchased package and adds
// its seats to the member limit. It returns the new limit.
func (r *repository) ApplyPackage(ctx context.Context, hrID string, pkg plan.Package) (int, error) {
	query := `
		UPDATE employees
		SET payment_status = 'paid',
		    package_price = $2,
		    package_members = $3,
		    member_limit = member_limit + $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING member_limit`

	var limit int
	err := r.db.QueryRowxContext(ctx, query, hrID, pkg.Price, pkg.Members).Scan(&limit)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("apply package: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("apply package: %w", err)
	}

	return limit, nil
}

func (r *repository) ListByHR(
	ctx context.Context,
	email string,
	page core.PageParams,
) ([]Payment, int, error) {
	page.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM payments WHERE hr_email = $1`, email); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	query := `
		SELECT id, hr_email, transaction_id, amount, package_members, status, created_at
		FROM payments
		WHERE hr_email = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, email, page.Size, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}

	return payments, total, nil
}
