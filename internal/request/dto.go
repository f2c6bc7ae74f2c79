// AngelaMos | 2026
// dto.go

package request

import (
	"time"
)

type CreateRequest struct {
	AssetID string `json:"asset_id" validate:"required,uuid"`
	Notes   string `json:"notes"    validate:"max=500"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approve reject return cancel"`
}

// Query filters request listings. Status applies to the requester's own
// listing only; Since limits results to requests made at or after it.
type Query struct {
	Search string
	Status string
	Since  *time.Time
	Page   int
	Size   int
}

type AssetInfo struct {
	ID           string `json:"id"`
	ProductName  string `json:"product_name"`
	ProductType  string `json:"product_type"`
	Quantity     int    `json:"product_quantity"`
	Availability string `json:"availability"`
}

type ProviderInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type Response struct {
	ID             string       `json:"id"`
	Asset          AssetInfo    `json:"asset"`
	ProviderInfo   ProviderInfo `json:"provider_info"`
	RequesterName  string       `json:"requester_name"`
	RequesterEmail string       `json:"requester_email"`
	Notes          string       `json:"notes"`
	Status         string       `json:"status"`
	RequestedDate  time.Time    `json:"requested_date"`
	ApproveDate    *time.Time   `json:"approve_date"`
}

func ToResponse(d *Detail) Response {
	return Response{
		ID: d.ID,
		Asset: AssetInfo{
			ID:           d.AssetID,
			ProductName:  d.ProductName,
			ProductType:  d.ProductType,
			Quantity:     d.ProductQuantity,
			Availability: d.Availability,
		},
		ProviderInfo: ProviderInfo{
			Name:  d.ProviderName,
			Email: d.HREmail,
			Photo: d.ProviderPhoto,
		},
		RequesterName:  d.RequesterName,
		RequesterEmail: d.RequesterEmail,
		Notes:          d.Notes,
		Status:         d.Status,
		RequestedDate:  d.RequestedDate,
		ApproveDate:    d.ApproveDate,
	}
}

func ToResponseList(details []Detail) []Response {
	out := make([]Response, 0, len(details))
	for i := range details {
		out = append(out, ToResponse(&details[i]))
	}
	return out
}
