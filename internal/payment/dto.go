// AngelaMos | 2026
// dto.go

package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/asset-management/internal/plan"
)

type IntentRequest struct {
	Package string `json:"package" validate:"required,max=50"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	ID           string `json:"id"`
}

type ConfirmRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=255"`
	Package       string `json:"package"        validate:"required,max=50"`
}

type ConfirmResponse struct {
	InsertedID    string `json:"insertedId"`
	PaymentStatus string `json:"payment_status"`
	MemberLimit   int    `json:"member_limit"`
}

type PackageResponse struct {
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	Members int             `json:"members"`
}

type Response struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	Amount         decimal.Decimal `json:"amount"`
	PackageMembers int             `json:"package_members"`
	Package        string          `json:"package,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToPackageList(pkgs []plan.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, PackageResponse{Title: p.Title, Price: p.Price, Members: p.Members})
	}
	return out
}

func ToResponseList(payments []Payment) []Response {
	out := make([]Response, 0, len(payments))
	for _, p := range payments {
		resp := Response{
			ID:             p.ID,
			TransactionID:  p.TransactionID,
			Amount:         p.Amount,
			PackageMembers: p.PackageMembers,
			Status:         p.Status,
			CreatedAt:      p.CreatedAt,
		}
		// Retired packages keep their seat count but lose the title.
		if pkg, err := plan.ByMembers(p.PackageMembers); err == nil {
			resp.Package = pkg.Title
		}
		out = append(out, resp)
	}
	return out
}
