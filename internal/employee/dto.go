// AngelaMos | 2026
// dto.go

package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type SignupRequest struct {
	Name        string `json:"name"          validate:"required,min=1,max=100"`
	Email       string `json:"email"         validate:"required,email,max=255"`
	Image       string `json:"image"         validate:"omitempty,url,max=2048"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Role        string `json:"role"          validate:"required,oneof=employee HR"`
	CompanyName string `json:"company_name"  validate:"required_if=Role HR,max=200"`
	CompanyLogo string `json:"company_logo"  validate:"omitempty,url,max=2048"`
	Package     string `json:"package"       validate:"required_if=Role HR,max=50"`
}

type SignupResponse struct {
	InsertedID *string `json:"insertedId"`
	Message    string  `json:"message,omitempty"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"          validate:"omitempty,min=1,max=100"`
	Image       *string `json:"image,omitempty"         validate:"omitempty,url,max=2048"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ProfileResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Image          string           `json:"image"`
	DateOfBirth    string           `json:"date_of_birth,omitempty"`
	Role           string           `json:"role"`
	IsJoin         bool             `json:"is_join"`
	CompanyName    string           `json:"company_name,omitempty"`
	CompanyLogo    string           `json:"company_logo,omitempty"`
	PackagePrice   *decimal.Decimal `json:"package_price,omitempty"`
	PackageMembers int              `json:"package_members,omitempty"`
	MemberLimit    int              `json:"member_limit,omitempty"`
	EmployeeCount  int              `json:"employee_count,omitempty"`
	PaymentStatus  string           `json:"payment_status,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// RoleInfo answers GET /employee/role/{email}. It is also what the role
// middleware and the payment gate read through the cache.
type RoleInfo struct {
	Role          string `json:"role"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

type CompanyInfo struct {
	CompanyName   string `json:"company_name"`
	CompanyLogo   string `json:"company_logo"`
	HRName        string `json:"hr_name"`
	HREmail       string `json:"hr_email"`
	EmployeeCount int    `json:"employee_count"`
	MemberLimit   int    `json:"member_limit"`
	PaymentStatus string `json:"payment_status"`
}

type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Role        string `json:"role"`
}

func ToProfileResponse(e *Employee) ProfileResponse {
	resp := ProfileResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Image:       e.Image,
		DateOfBirth: formatDate(e.DateOfBirth),
		Role:        e.Role,
		IsJoin:      e.IsJoin,
		CreatedAt:   e.CreatedAt,
	}

	if e.IsHR() {
		price := e.PackagePrice
		resp.CompanyName = e.CompanyName
		resp.CompanyLogo = e.CompanyLogo
		resp.PackagePrice = &price
		resp.PackageMembers = e.PackageMembers
		resp.MemberLimit = e.MemberLimit
		resp.EmployeeCount = e.EmployeeCount
		resp.PaymentStatus = e.PaymentStatus
	}

	return resp
}

func ToSummary(e *Employee) Summary {
	return Summary{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Image:       e.Image,
		DateOfBirth: formatDate(e.DateOfBirth),
		Role:        e.Role,
	}
}

func ToSummaryList(employees []Employee) []Summary {
	out := make([]Summary, 0, len(employees))
	for i := range employees {
		out = append(out, ToSummary(&employees[i]))
	}
	return out
}

func ToCompanyInfo(hr *Employee) CompanyInfo {
	return CompanyInfo{
		CompanyName:   hr.CompanyName,
		CompanyLogo:   hr.CompanyLogo,
		HRName:        hr.Name,
		HREmail:       hr.Email,
		EmployeeCount: hr.EmployeeCount,
		MemberLimit:   hr.MemberLimit,
		PaymentStatus: hr.PaymentStatus,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
