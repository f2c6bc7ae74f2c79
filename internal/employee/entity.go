// AngelaMos | 2026
// entity.go

package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "HR"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Employee is a registered account. HR accounts also carry their
// company profile and billing state.
type Employee struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Image          string          `db:"image"`
	DateOfBirth    *time.Time      `db:"date_of_birth"`
	Role           string          `db:"role"`
	IsJoin         bool            `db:"is_join"`
	CompanyName    string          `db:"company_name"`
	CompanyLogo    string          `db:"company_logo"`
	PackagePrice   decimal.Decimal `db:"package_price"`
	PackageMembers int             `db:"package_members"`
	MemberLimit    int             `db:"member_limit"`
	EmployeeCount  int             `db:"employee_count"`
	PaymentStatus  string          `db:"payment_status"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (e *Employee) IsHR() bool {
	return e.Role == RoleHR
}

func (e *Employee) IsPaid() bool {
	return e.PaymentStatus == PaymentPaid
}

// HasCapacity reports whether n more members fit under the member limit.
func (e *Employee) HasCapacity(n int) bool {
	return e.EmployeeCount+n <= e.MemberLimit
}
