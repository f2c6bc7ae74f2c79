// AngelaMos | 2026
// entity.go

package asset

import (
	"time"
)

const (
	TypeReturnable    = "Returnable"
	TypeNonReturnable = "Non-returnable"
)

const (
	Available  = "Available"
	OutOfStock = "Out of stock"
)

type Asset struct {
	ID              string    `db:"id"`
	ProductName     string    `db:"product_name"`
	ProductType     string    `db:"product_type"`
	ProductQuantity int       `db:"product_quantity"`
	Availability    string    `db:"availability"`
	AddedDate       time.Time `db:"added_date"`
	RequestCount    int       `db:"request_count"`
	ProviderName    string    `db:"provider_name"`
	ProviderEmail   string    `db:"provider_email"`
	ProviderPhoto   string    `db:"provider_photo"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (a *Asset) IsReturnable() bool {
	return a.ProductType == TypeReturnable
}

// AvailabilityFor derives the availability label from a stock quantity.
func AvailabilityFor(quantity int) string {
	if quantity > 0 {
		return Available
	}
	return OutOfStock
}
