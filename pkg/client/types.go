// AngelaMos | 2026
// types.go

package client

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "HR"

	PaymentPending = "pending"
	PaymentPaid    = "paid"

	Returnable    = "Returnable"
	NonReturnable = "Non-returnable"

	FilterAvailable  = "Available"
	FilterOutOfStock = "Out of stock"

	SortQuantityAsc  = "quantity-asc"
	SortQuantityDesc = "quantity-dsc"

	StatusPending = "pending"
	StatusApprove = "approve"
	StatusReject  = "reject"
	StatusReturn  = "return"
	StatusCancel  = "cancel"
)

// List is one page of a paginated listing plus the server's total.
type List[T any] struct {
	Items []T
	Count int
}

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Image       string `json:"image,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyLogo string `json:"company_logo,omitempty"`
	Package     string `json:"package,omitempty"`
}

type SignupResult struct {
	InsertedID *string `json:"insertedId"`
	Message    string  `json:"message,omitempty"`
}

// AlreadyExists reports the "user already exists" answer.
func (r SignupResult) AlreadyExists() bool {
	return r.InsertedID == nil
}

type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
}

type Employee struct {
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

// SeatsLeft is how many more members the team can take.
func (c CompanyInfo) SeatsLeft() int {
	return max(c.MemberLimit-c.EmployeeCount, 0)
}

type EmployeeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Role        string `json:"role"`
}

type Member struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Image       string    `json:"image"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Role        string    `json:"role"`
	JoinDate    time.Time `json:"join_date"`
	HREmail     string    `json:"hr_email"`
	CompanyName string    `json:"company_name"`
	CompanyLogo string    `json:"company_logo"`
}

type Provider struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type Asset struct {
	ID              string    `json:"id"`
	ProductName     string    `json:"product_name"`
	ProductType     string    `json:"product_type"`
	ProductQuantity int       `json:"product_quantity"`
	Availability    string    `json:"availability"`
	AddedDate       time.Time `json:"added_date"`
	RequestCount    int       `json:"request_count"`
	Provider        Provider  `json:"provider_info"`
}

type NewAsset struct {
	ProductName     string `json:"product_name"`
	ProductType     string `json:"product_type"`
	ProductQuantity int    `json:"product_quantity"`
}

type AssetUpdate struct {
	ProductName     *string `json:"product_name,omitempty"`
	ProductType     *string `json:"product_type,omitempty"`
	ProductQuantity *int    `json:"product_quantity,omitempty"`
}

type AssetCount struct {
	Returnable    int `json:"returnable"`
	NonReturnable int `json:"non_returnable"`
}

type RequestedAsset struct {
	ID           string `json:"id"`
	ProductName  string `json:"product_name"`
	ProductType  string `json:"product_type"`
	Quantity     int    `json:"product_quantity"`
	Availability string `json:"availability"`
}

type AssetRequest struct {
	ID             string         `json:"id"`
	Asset          RequestedAsset `json:"asset"`
	Provider       Provider       `json:"provider_info"`
	RequesterName  string         `json:"requester_name"`
	RequesterEmail string         `json:"requester_email"`
	Notes          string         `json:"notes"`
	Status         string         `json:"status"`
	RequestedDate  time.Time      `json:"requested_date"`
	ApproveDate    *time.Time     `json:"approve_date"`
}

type Package struct {
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	Members int             `json:"members"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
	ID           string `json:"id"`
}

type PaymentReceipt struct {
	InsertedID    string `json:"insertedId"`
	PaymentStatus string `json:"payment_status"`
	MemberLimit   int    `json:"member_limit"`
}

type Payment struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	Amount         decimal.Decimal `json:"amount"`
	PackageMembers int             `json:"package_members"`
	Package        string          `json:"package,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
