// AngelaMos | 2026
// repository.go

package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/asset-management/internal/core"
)

// Columns is the select list that scans into Employee.
const Columns = `
	id, name, email, image, date_of_birth, role, is_join,
	company_name, company_logo, package_price, package_members,
	member_limit, employee_count, payment_status, created_at, updated_at`

type ProfileUpdate struct {
	Name        *string
	Image       *string
	DateOfBirth *time.Time
}

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (int64, error)
	CompanyOf(ctx context.Context, employeeEmail string) (*Employee, error)
	ListNotAffiliated(ctx context.Context, page core.PageParams) ([]Employee, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (
			id, name, email, image, date_of_birth, role, is_join,
			company_name, company_logo, package_price, package_members,
			member_limit, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		e.ID,
		e.Name,
		e.Email,
		e.Image,
		e.DateOfBirth,
		e.Role,
		e.IsJoin,
		e.CompanyName,
		e.CompanyLogo,
		e.PackagePrice,
		e.PackageMembers,
		e.MemberLimit,
		e.PaymentStatus,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create employee: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	query := `SELECT ` + Columns + ` FROM employees WHERE email = $1`

	var e Employee
	err := r.db.GetContext(ctx, &e, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get employee by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}

	return &e, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Employee, error) {
	query := `SELECT ` + Columns + ` FROM employees WHERE id = $1`

	var e Employee
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get employee: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	return &e, nil
}

// UpdateProfile leaves nil fields untouched.
func (r *repository) UpdateProfile(
	ctx context.Context,
	email string,
	upd ProfileUpdate,
) (int64, error) {
	query := `
		UPDATE employees
		SET name = COALESCE($2, name),
		    image = COALESCE($3, image),
		    date_of_birth = COALESCE($4, date_of_birth),
		    updated_at = NOW()
		WHERE email = $1`

	result, err := r.db.ExecContext(ctx, query, email, upd.Name, upd.Image, upd.DateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("update employee: %w", err)
	}

	return core.ExpectRows(result, "update employee")
}

// CompanyOf returns the HR account whose team employeeEmail belongs to.
func (r *repository) CompanyOf(ctx context.Context, employeeEmail string) (*Employee, error) {
	query := `
		SELECT hr.id, hr.name, hr.email, hr.image, hr.date_of_birth, hr.role, hr.is_join,
		       hr.company_name, hr.company_logo, hr.package_price, hr.package_members,
		       hr.member_limit, hr.employee_count, hr.payment_status, hr.created_at, hr.updated_at
		FROM team_members tm
		JOIN employees e ON e.id = tm.employee_id
		JOIN employees hr ON hr.id = tm.hr_id
		WHERE e.email = $1`

	var hr Employee
	err := r.db.GetContext(ctx, &hr, query, employeeEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company of employee: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("company of employee: %w", err)
	}

	return &hr, nil
}

func (r *repository) ListNotAffiliated(
	ctx context.Context,
	page core.PageParams,
) ([]Employee, int, error) {
	page.Normalize()

	where := `role = 'employee' AND is_join = FALSE`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM employees WHERE `+where); err != nil {
		return nil, 0, fmt.Errorf("count unaffiliated employees: %w", err)
	}

	query := `SELECT ` + Columns + ` FROM employees WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var employees []Employee
	if err := r.db.SelectContext(ctx, &employees, query, page.Size, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list unaffiliated employees: %w", err)
	}

	return employees, total, nil
}
