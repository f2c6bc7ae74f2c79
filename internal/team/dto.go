// AngelaMos | 2026
// dto.go

package team

import (
	"time"
)

type AddSingleRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

type AddMultipleRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,max=100,dive,required,uuid"`
}

type AddMultipleResponse struct {
	Acknowledged  bool `json:"acknowledged"`
	InsertedCount int  `json:"insertedCount"`
}

type MemberResponse struct {
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

func ToMemberResponse(m *Member) MemberResponse {
	resp := MemberResponse{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		Name:        m.EmployeeName,
		Email:       m.EmployeeEmail,
		Image:       m.EmployeeImage,
		Role:        m.EmployeeRole,
		JoinDate:    m.JoinDate,
		HREmail:     m.HREmail,
		CompanyName: m.CompanyName,
		CompanyLogo: m.CompanyLogo,
	}
	if m.EmployeeBirth != nil {
		resp.DateOfBirth = m.EmployeeBirth.Format("2006-01-02")
	}
	return resp
}

func ToMemberResponseList(members []Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, ToMemberResponse(&members[i]))
	}
	return out
}
