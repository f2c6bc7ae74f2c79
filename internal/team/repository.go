// AngelaMos | 2026
// repository.go

package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
)

const memberColumns = `
	id, employee_id, hr_id, join_date, employee_name, employee_email,
	employee_image, employee_birth, employee_role, hr_name, hr_email,
	hr_company_name, hr_company_logo`

type Repository interface {
	LockHR(ctx context.Context, hrEmail string) (*employee.Employee, error)
	LockEmployees(ctx context.Context, ids []string) ([]employee.Employee, error)
	Insert(ctx context.Context, m *Member) error
	SetJoined(ctx context.Context, employeeIDs []string, joined bool) error
	AdjustEmployeeCount(ctx context.Context, hrID string, delta int) error
	GetByID(ctx context.Context, id string) (*Member, error)
	Delete(ctx context.Context, id string) (int64, error)
	ListByHR(ctx context.Context, hrEmail string, page core.PageParams) ([]Member, int, error)
	ListTeammates(ctx context.Context, employeeEmail string, page core.PageParams) ([]Member, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// LockHR loads the HR row FOR UPDATE so concurrent adds serialize on the
// member limit.
func (r *repository) LockHR(ctx context.Context, hrEmail string) (*employee.Employee, error) {
	query := `SELECT ` + employee.Columns + `
		FROM employees
		WHERE email = $1 AND role = 'HR'
		FOR UPDATE`

	var hr employee.Employee
	err := r.db.GetContext(ctx, &hr, query, hrEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock hr: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock hr: %w", err)
	}

	return &hr, nil
}

func (r *repository) LockEmployees(ctx context.Context, ids []string) ([]employee.Employee, error) {
	query, args, err := sqlx.In(`SELECT `+employee.Columns+`
		FROM employees
		WHERE id IN (?)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock employees: %w", err)
	}

	var employees []employee.Employee
	if err := r.db.SelectContext(ctx, &employees, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("lock employees: %w", err)
	}

	return employees, nil
}

func (r *repository) Insert(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO team_members (
			id, employee_id, hr_id, employee_name, employee_email,
			employee_image, employee_birth, employee_role, hr_name, hr_email,
			hr_company_name, hr_company_logo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING join_date`

	err := r.db.GetContext(ctx, &m.JoinDate, query,
		m.ID,
		m.EmployeeID,
		m.HRID,
		m.EmployeeName,
		m.EmployeeEmail,
		m.EmployeeImage,
		m.EmployeeBirth,
		m.EmployeeRole,
		m.HRName,
		m.HREmail,
		m.CompanyName,
		m.CompanyLogo,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert team member: %w", core.ErrDuplicateKey)
		}
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("insert team member: %w", core.ErrNotFound)
		}
		return fmt.Errorf("insert team member: %w", err)
	}

	return nil
}

func (r *repository) SetJoined(ctx context.Context, employeeIDs []string, joined bool) error {
	query, args, err := sqlx.In(
		`UPDATE employees SET is_join = ?, updated_at = NOW() WHERE id IN (?)`,
		joined, employeeIDs,
	)
	if err != nil {
		return fmt.Errorf("set joined: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("set joined: %w", err)
	}

	return nil
}

func (r *repository) AdjustEmployeeCount(ctx context.Context, hrID string, delta int) error {
	query := `
		UPDATE employees
		SET employee_count = GREATEST(employee_count + $2, 0), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, hrID, delta)
	if err != nil {
		return fmt.Errorf("adjust employee count: %w", err)
	}

	_, err = core.ExpectRows(result, "adjust employee count")
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE id = $1`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get team member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get team member: %w", err)
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete team member: %w", err)
	}

	return core.ExpectRows(result, "delete team member")
}

func (r *repository) ListByHR(
	ctx context.Context,
	hrEmail string,
	page core.PageParams,
) ([]Member, int, error) {
	return r.list(ctx, `hr_email = $1`, hrEmail, page)
}

// ListTeammates lists everyone in the same team as employeeEmail,
// including the employee.
func (r *repository) ListTeammates(
	ctx context.Context,
	employeeEmail string,
	page core.PageParams,
) ([]Member, int, error) {
	return r.list(ctx,
		`hr_id = (SELECT hr_id FROM team_members WHERE employee_email = $1)`,
		employeeEmail, page)
}

func (r *repository) list(
	ctx context.Context,
	where string,
	arg string,
	page core.PageParams,
) ([]Member, int, error) {
	page.Normalize()

	var total int
	countQuery := `SELECT COUNT(*) FROM team_members WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, arg); err != nil {
		return nil, 0, fmt.Errorf("count team members: %w", err)
	}

	query := `SELECT ` + memberColumns + ` FROM team_members WHERE ` + where + `
		ORDER BY join_date DESC, id
		LIMIT $2 OFFSET $3`

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, arg, page.Size, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list team members: %w", err)
	}

	return members, total, nil
}
