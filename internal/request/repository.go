// AngelaMos | 2026
// repository.go

package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/asset-management/internal/core"
)

const requestColumns = `
	id, asset_id, requester_name, requester_email, hr_email, notes,
	status, requested_date, approve_date, updated_at`

const detailColumns = `
	r.id, r.asset_id, r.requester_name, r.requester_email, r.hr_email,
	r.notes, r.status, r.requested_date, r.approve_date, r.updated_at,
	a.product_name, a.product_type, a.product_quantity, a.availability,
	a.provider_name, a.provider_photo`

type Repository interface {
	Create(ctx context.Context, req *Request) error
	Lock(ctx context.Context, id string) (*Request, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	SetStatus(ctx context.Context, id, status string, approvedAt *time.Time) (int64, error)
	ListByRequester(ctx context.Context, email string, q Query) ([]Detail, int, error)
	ListByHR(ctx context.Context, hrEmail string, q Query) ([]Detail, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	query := `
		INSERT INTO asset_requests (
			id, asset_id, requester_name, requester_email, hr_email, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING requested_date, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.ID,
		req.AssetID,
		req.RequesterName,
		req.RequesterEmail,
		req.HREmail,
		req.Notes,
		req.Status,
	).Scan(&req.RequestedDate, &req.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create asset request: asset %s: %w", req.AssetID, core.ErrNotFound)
		}
		return fmt.Errorf("create asset request: %w", err)
	}

	return nil
}

func (r *repository) Lock(ctx context.Context, id string) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM asset_requests WHERE id = $1 FOR UPDATE`

	var req Request
	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock asset request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock asset request: %w", err)
	}

	return &req, nil
}

func (r *repository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	query := `SELECT ` + detailColumns + `
		FROM asset_requests r
		JOIN assets a ON a.id = r.asset_id
		WHERE r.id = $1`

	var d Detail
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get asset request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset request: %w", err)
	}

	return &d, nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
	approvedAt *time.Time,
) (int64, error) {
	query := `
		UPDATE asset_requests
		SET status = $2,
		    approve_date = COALESCE($3, approve_date),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, approvedAt)
	if err != nil {
		return 0, fmt.Errorf("set asset request status: %w", err)
	}

	return core.ExpectRows(result, "set asset request status")
}

func (r *repository) ListByRequester(ctx context.Context, email string, q Query) ([]Detail, int, error) {
	return r.list(ctx, "r.requester_email", email, q)
}

func (r *repository) ListByHR(ctx context.Context, hrEmail string, q Query) ([]Detail, int, error) {
	return r.list(ctx, "r.hr_email", hrEmail, q)
}

func (r *repository) list(ctx context.Context, ownerColumn, owner string, q Query) ([]Detail, int, error) {
	page := core.PageParams{Page: q.Page, Size: q.Size}
	page.Normalize()

	where, args := buildListFilter(ownerColumn, owner, q)
	from := ` FROM asset_requests r JOIN assets a ON a.id = r.asset_id WHERE ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from, args...); err != nil {
		return nil, 0, fmt.Errorf("count asset requests: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY r.requested_date DESC, r.id LIMIT $%d OFFSET $%d`,
		detailColumns, from, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	var details []Detail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list asset requests: %w", err)
	}

	return details, total, nil
}

// buildListFilter matches search against the product name and, on HR
// listings, the requester's name and email as well.
func buildListFilter(ownerColumn, owner string, q Query) (string, []any) {
	conditions := []string{ownerColumn + " = $1"}
	args := []any{owner}

	if q.Status != "" {
		args = append(args, q.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}

	if q.Since != nil {
		args = append(args, *q.Since)
		conditions = append(conditions, fmt.Sprintf("r.requested_date >= $%d", len(args)))
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		args = append(args, "%"+core.EscapeLike(search)+"%")
		n := len(args)
		if ownerColumn == "r.hr_email" {
			conditions = append(conditions, fmt.Sprintf(
				"(a.product_name ILIKE $%d OR r.requester_name ILIKE $%d OR r.requester_email ILIKE $%d)",
				n, n, n))
		} else {
			conditions = append(conditions, fmt.Sprintf("a.product_name ILIKE $%d", n))
		}
	}

	return strings.Join(conditions, " AND "), args
}
