// AngelaMos | 2026
// repository_test.go

package asset

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/internal/testdb"
)

func seedAsset(t *testing.T, repo Repository, name, typ string, qty int) *Asset {
	t.Helper()
	a := &Asset{
		ID:              uuid.New().String(),
		ProductName:     name,
		ProductType:     typ,
		ProductQuantity: qty,
		Availability:    AvailabilityFor(qty),
		ProviderName:    "Hana",
		ProviderEmail:   "hr@acme.io",
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAssetRepositoryAgainstPostgres(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := NewRepository(db)

	laptop := seedAsset(t, repo, "Laptop", TypeReturnable, 2)
	seedAsset(t, repo, "Paper 100%", TypeNonReturnable, 0)
	seedAsset(t, repo, "Pens", TypeNonReturnable, 40)

	list, total, err := repo.List(ctx, "hr@acme.io", ListParams{Filter: Available, Sort: SortQuantityAsc})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Laptop", list[0].ProductName)

	list, total, err = repo.List(ctx, "hr@acme.io", ListParams{Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, OutOfStock, list[0].Availability)

	_, total, err = repo.List(ctx, "hr@acme.io", ListParams{Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	counts, err := repo.CountByType(ctx, "hr@acme.io")
	require.NoError(t, err)
	assert.Equal(t, CountResponse{Returnable: 1, NonReturnable: 2}, counts)

	require.NoError(t, repo.AdjustQuantity(ctx, laptop.ID, -2))
	got, err := repo.GetByID(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ProductQuantity)
	assert.Equal(t, OutOfStock, got.Availability)

	assert.ErrorIs(t, repo.AdjustQuantity(ctx, laptop.ID, -1), ErrOutOfStock)

	require.NoError(t, repo.IncrementRequestCount(ctx, laptop.ID))
	qty := 5
	_, err = repo.Update(ctx, laptop.ID, Update{ProductQuantity: &qty})
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, Available, got.Availability)
	assert.Equal(t, 1, got.RequestCount)

	n, err := repo.Delete(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
