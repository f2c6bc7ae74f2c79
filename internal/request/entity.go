// AngelaMos | 2026
// entity.go

package request

import (
	"time"
)

const (
	StatusPending = "pending"
	StatusApprove = "approve"
	StatusReject  = "reject"
	StatusReturn  = "return"
	StatusCancel  = "cancel"
)

type Request struct {
	ID             string     `db:"id"`
	AssetID        string     `db:"asset_id"`
	RequesterName  string     `db:"requester_name"`
	RequesterEmail string     `db:"requester_email"`
	HREmail        string     `db:"hr_email"`
	Notes          string     `db:"notes"`
	Status         string     `db:"status"`
	RequestedDate  time.Time  `db:"requested_date"`
	ApproveDate    *time.Time `db:"approve_date"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// Detail is a request joined with the asset it asks for.
type Detail struct {
	Request
	ProductName     string `db:"product_name"`
	ProductType     string `db:"product_type"`
	ProductQuantity int    `db:"product_quantity"`
	Availability    string `db:"availability"`
	ProviderName    string `db:"provider_name"`
	ProviderPhoto   string `db:"provider_photo"`
}
