// AngelaMos | 2026
// repository.go

package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/asset-management/internal/core"
)

const assetColumns = `
	id, product_name, product_type, product_quantity, availability,
	added_date, request_count, provider_name, provider_email,
	provider_photo, updated_at`

var ErrOutOfStock = core.ConflictError("out_of_stock", "asset is out of stock")

type Update struct {
	ProductName     *string
	ProductType     *string
	ProductQuantity *int
}

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	LockByID(ctx context.Context, id string) (*Asset, error)
	Update(ctx context.Context, id string, upd Update) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, providerEmail string, params ListParams) ([]Asset, int, error)
	CountByType(ctx context.Context, providerEmail string) (CountResponse, error)
	AdjustQuantity(ctx context.Context, id string, delta int) error
	IncrementRequestCount(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Asset) error {
	query := `
		INSERT INTO assets (
			id, product_name, product_type, product_quantity, availability,
			provider_name, provider_email, provider_photo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING added_date, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.ProductName,
		a.ProductType,
		a.ProductQuantity,
		a.Availability,
		a.ProviderName,
		a.ProviderEmail,
		a.ProviderPhoto,
	).Scan(&a.AddedDate, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Asset, error) {
	return r.get(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
}

// LockByID is GetByID with a row lock, for use inside a transaction.
func (r *repository) LockByID(ctx context.Context, id string) (*Asset, error) {
	return r.get(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id)
}

func (r *repository) get(ctx context.Context, query, id string) (*Asset, error) {
	var a Asset
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get asset: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}

	return &a, nil
}

// Update applies the non-nil fields and recomputes availability from the
// resulting quantity.
func (r *repository) Update(ctx context.Context, id string, upd Update) (int64, error) {
	query := `
		UPDATE assets
		SET product_name = COALESCE($2, product_name),
		    product_type = COALESCE($3, product_type),
		    product_quantity = COALESCE($4, product_quantity),
		    availability = CASE WHEN COALESCE($4, product_quantity) > 0
		                        THEN 'Available' ELSE 'Out of stock' END,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, upd.ProductName, upd.ProductType, upd.ProductQuantity)
	if err != nil {
		return 0, fmt.Errorf("update asset: %w", err)
	}

	return core.ExpectRows(result, "update asset")
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete asset: %w", err)
	}

	return core.ExpectRows(result, "delete asset")
}

func (r *repository) List(
	ctx context.Context,
	providerEmail string,
	params ListParams,
) ([]Asset, int, error) {
	page := core.PageParams{Page: params.Page, Size: params.Size}
	page.Normalize()

	where, args := buildListFilter(providerEmail, params)

	var total int
	countQuery := `SELECT COUNT(*) FROM assets WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM assets WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		assetColumns, where, listOrder(params.Sort), len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	var assets []Asset
	if err := r.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}

	return assets, total, nil
}

// buildListFilter turns list parameters into a WHERE clause and its
// positional arguments. Availability filters are evaluated on quantity,
// the value availability is derived from.
func buildListFilter(providerEmail string, params ListParams) (string, []any) {
	conditions := []string{"provider_email = $1"}
	args := []any{providerEmail}

	switch params.Filter {
	case Available:
		conditions = append(conditions, "product_quantity > 0")
	case OutOfStock:
		conditions = append(conditions, "product_quantity = 0")
	case TypeReturnable, TypeNonReturnable:
		args = append(args, params.Filter)
		conditions = append(conditions, fmt.Sprintf("product_type = $%d", len(args)))
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+core.EscapeLike(search)+"%")
		conditions = append(conditions, fmt.Sprintf("product_name ILIKE $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func listOrder(sort string) string {
	switch sort {
	case SortQuantityAsc:
		return "product_quantity ASC, added_date DESC, id"
	case SortQuantityDesc:
		return "product_quantity DESC, added_date DESC, id"
	default:
		return "added_date DESC, id"
	}
}

func (r *repository) CountByType(ctx context.Context, providerEmail string) (CountResponse, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE product_type = 'Returnable') AS returnable,
			COUNT(*) FILTER (WHERE product_type = 'Non-returnable') AS non_returnable
		FROM assets
		WHERE provider_email = $1`

	var counts struct {
		Returnable    int `db:"returnable"`
		NonReturnable int `db:"non_returnable"`
	}
	if err := r.db.GetContext(ctx, &counts, query, providerEmail); err != nil {
		return CountResponse{}, fmt.Errorf("count assets by type: %w", err)
	}

	return CountResponse{Returnable: counts.Returnable, NonReturnable: counts.NonReturnable}, nil
}

// AdjustQuantity moves stock by delta. Taking stock below zero fails with
// ErrOutOfStock and changes nothing.
func (r *repository) AdjustQuantity(ctx context.Context, id string, delta int) error {
	query := `
		UPDATE assets
		SET product_quantity = product_quantity + $2,
		    availability = CASE WHEN product_quantity + $2 > 0
		                        THEN 'Available' ELSE 'Out of stock' END,
		    updated_at = NOW()
		WHERE id = $1 AND product_quantity + $2 >= 0`

	result, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		if core.IsCheckViolation(err) {
			return ErrOutOfStock
		}
		return fmt.Errorf("adjust asset quantity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust asset quantity: %w", err)
	}
	if rows == 0 {
		return ErrOutOfStock
	}

	return nil
}

func (r *repository) IncrementRequestCount(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE assets SET request_count = request_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment request count: %w", err)
	}

	_, err = core.ExpectRows(result, "increment request count")
	return err
}
