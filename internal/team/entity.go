// AngelaMos | 2026
// entity.go

package team

import (
	"time"
)

// Member is one employee's membership in an HR's team. The employee and
// HR fields are snapshots taken when the employee joined.
type Member struct {
	ID            string     `db:"id"`
	EmployeeID    string     `db:"employee_id"`
	HRID          string     `db:"hr_id"`
	JoinDate      time.Time  `db:"join_date"`
	EmployeeName  string     `db:"employee_name"`
	EmployeeEmail string     `db:"employee_email"`
	EmployeeImage string     `db:"employee_image"`
	EmployeeBirth *time.Time `db:"employee_birth"`
	EmployeeRole  string     `db:"employee_role"`
	HRName        string     `db:"hr_name"`
	HREmail       string     `db:"hr_email"`
	CompanyName   string     `db:"hr_company_name"`
	CompanyLogo   string     `db:"hr_company_logo"`
}
