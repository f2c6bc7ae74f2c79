// AngelaMos | 2026
// dto.go

package asset

import (
	"time"
)

type CreateRequest struct {
	ProductName     string `json:"product_name"     validate:"required,min=1,max=200"`
	ProductType     string `json:"product_type"     validate:"required,oneof=Returnable Non-returnable"`
	ProductQuantity int    `json:"product_quantity" validate:"required,min=1,max=100000"`
}

type UpdateRequest struct {
	ProductName     *string `json:"product_name,omitempty"     validate:"omitempty,min=1,max=200"`
	ProductType     *string `json:"product_type,omitempty"     validate:"omitempty,oneof=Returnable Non-returnable"`
	ProductQuantity *int    `json:"product_quantity,omitempty" validate:"omitempty,min=0,max=100000"`
}

const (
	SortQuantityAsc  = "quantity-asc"
	SortQuantityDesc = "quantity-dsc"
)

// ListParams are the HR asset list query parameters. Unknown filter and
// sort values are ignored rather than rejected.
type ListParams struct {
	Filter string
	Sort   string
	Search string
	Page   int
	Size   int
}

type ProviderInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type Response struct {
	ID              string       `json:"id"`
	ProductName     string       `json:"product_name"`
	ProductType     string       `json:"product_type"`
	ProductQuantity int          `json:"product_quantity"`
	Availability    string       `json:"availability"`
	AddedDate       time.Time    `json:"added_date"`
	RequestCount    int          `json:"request_count"`
	ProviderInfo    ProviderInfo `json:"provider_info"`
}

type CountResponse struct {
	Returnable    int `json:"returnable"`
	NonReturnable int `json:"non_returnable"`
}

func ToResponse(a *Asset) Response {
	return Response{
		ID:              a.ID,
		ProductName:     a.ProductName,
		ProductType:     a.ProductType,
		ProductQuantity: a.ProductQuantity,
		Availability:    a.Availability,
		AddedDate:       a.AddedDate,
		RequestCount:    a.RequestCount,
		ProviderInfo: ProviderInfo{
			Name:  a.ProviderName,
			Email: a.ProviderEmail,
			Photo: a.ProviderPhoto,
		},
	}
}

func ToResponseList(assets []Asset) []Response {
	out := make([]Response, 0, len(assets))
	for i := range assets {
		out = append(out, ToResponse(&assets[i]))
	}
	return out
}
