// AngelaMos | 2026
// plan.go

// Package plan is the catalog of HR subscription packages.
package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/asset-management/internal/core"
)

type Package struct {
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	Members int             `json:"members"`
}

var catalog = []Package{
	{Title: "Base", Price: decimal.NewFromInt(5), Members: 5},
	{Title: "Regular", Price: decimal.NewFromInt(8), Members: 10},
	{Title: "Premium", Price: decimal.NewFromInt(15), Members: 20},
}

// All returns a copy of the catalog ordered by price.
func All() []Package {
	out := make([]Package, len(catalog))
	copy(out, catalog)
	return out
}

func ByTitle(title string) (Package, error) {
	for _, p := range catalog {
		if strings.EqualFold(p.Title, title) {
			return p, nil
		}
	}
	return Package{}, fmt.Errorf("package %q: %w", title, core.ErrNotFound)
}

// ByMembers finds the package that grants members seats.
func ByMembers(members int) (Package, error) {
	for _, p := range catalog {
		if p.Members == members {
			return p, nil
		}
	}
	return Package{}, fmt.Errorf("package with %d members: %w", members, core.ErrNotFound)
}

// AmountInCents converts a price to the smallest currency unit the payment
// gateway expects.
func AmountInCents(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}
