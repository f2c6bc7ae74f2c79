// AngelaMos | 2026
// entity.go

package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID             string          `db:"id"`
	HREmail        string          `db:"hr_email"`
	TransactionID  string          `db:"transaction_id"`
	Amount         decimal.Decimal `db:"amount"`
	PackageMembers int             `db:"package_members"`
	Status         string          `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
}
