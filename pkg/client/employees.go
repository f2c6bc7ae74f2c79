// AngelaMos | 2026
// employees.go

package client

import (
	"context"
	"net/http"
	"strings"
)

// Signup registers the account behind the current identity. It needs no
// session; registering twice answers AlreadyExists.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResult, error) {
	var out SignupResult
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/employees",
		body:   req,
	}, &out)
	if err != nil {
		return SignupResult{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	c.invalidate(cacheKey("role", email), cacheKey("employee", email))
	return out, nil
}

func (c *Client) Profile(ctx context.Context) (*Employee, error) {
	path, email, err := c.selfPath("/employee/")
	if err != nil {
		return nil, err
	}
	return readThrough(ctx, c, cacheKey("employee", email), func(ctx context.Context) (*Employee, error) {
		var e Employee
		if err := c.do(ctx, request{method: http.MethodGet, path: path, authed: true}, &e); err != nil {
			return nil, err
		}
		return &e, nil
	})
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (int64, error) {
	path, email, err := c.selfPath("/employee/")
	if err != nil {
		return 0, err
	}

	var out struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	err = c.do(ctx, request{method: http.MethodPatch, path: path, body: upd, authed: true}, &out)
	if err != nil {
		return 0, err
	}
	c.invalidate(cacheKey("employee", email))
	return out.ModifiedCount, nil
}

// Role is the shared role lookup every view reads.
func (c *Client) Role(ctx context.Context) (RoleInfo, error) {
	path, email, err := c.selfPath("/employee/role/")
	if err != nil {
		return RoleInfo{}, err
	}
	return readThrough(ctx, c, cacheKey("role", email), func(ctx context.Context) (RoleInfo, error) {
		var info RoleInfo
		err := c.do(ctx, request{method: http.MethodGet, path: path, authed: true}, &info)
		return info, err
	})
}

// PaymentStatus is the payment gate. It is answered from the cached role
// lookup, so any number of views share one request.
func (c *Client) PaymentStatus(ctx context.Context) (string, error) {
	info, err := c.Role(ctx)
	if err != nil {
		return "", err
	}
	if info.Role != RoleHR {
		return "", nil
	}
	if info.PaymentStatus == "" {
		return PaymentPending, nil
	}
	return info.PaymentStatus, nil
}

// CompanyInfo is the HR's own company, or for employees the company of
// the team they joined. Employees outside any team get ErrNotFound.
func (c *Client) CompanyInfo(ctx context.Context) (CompanyInfo, error) {
	path, email, err := c.selfPath("/company-info/")
	if err != nil {
		return CompanyInfo{}, err
	}
	return readThrough(ctx, c, cacheKey("company", email), func(ctx context.Context) (CompanyInfo, error) {
		var info CompanyInfo
		err := c.do(ctx, request{method: http.MethodGet, path: path, authed: true}, &info)
		return info, err
	})
}

// Joined reports whether the signed-in employee belongs to a team.
func (c *Client) Joined(ctx context.Context) (bool, error) {
	e, err := c.Profile(ctx)
	if err != nil {
		return false, err
	}
	return e.IsJoin, nil
}

// NotAffiliated lists employees without a team, for HR to hire.
func (c *Client) NotAffiliated(ctx context.Context, pager *Pager) (List[EmployeeSummary], error) {
	return paged[EmployeeSummary](ctx, c, "/employees/not-affiliated", "employees", nil, pager)
}
