// AngelaMos | 2026
// teams.go

package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

var ErrEmptySelection = errors.New("no employees selected")

// AddTeamMember hires one employee into the signed-in HR's team.
func (c *Client) AddTeamMember(ctx context.Context, employeeID string) (string, error) {
	var out struct {
		InsertedID string `json:"insertedId"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/teams/single",
		body:   map[string]string{"employee_id": employeeID},
		authed: true,
	}, &out)
	if err != nil {
		return "", err
	}
	c.teamChanged()
	return out.InsertedID, nil
}

// AddTeamMembers hires every selected employee in one request. When the
// team would end up larger than the member limit it fails with
// ErrMemberLimitExceeded before anything is sent. The selection is
// cleared only after the server accepts the batch.
func (c *Client) AddTeamMembers(ctx context.Context, sel *Selection) (int, error) {
	ids := sel.IDs()
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	company, err := c.CompanyInfo(ctx)
	if err != nil {
		return 0, err
	}
	if company.EmployeeCount+len(ids) > company.MemberLimit {
		return 0, ErrMemberLimitExceeded
	}

	var out struct {
		Acknowledged  bool `json:"acknowledged"`
		InsertedCount int  `json:"insertedCount"`
	}
	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   "/teams/multiple",
		body:   map[string][]string{"employee_ids": ids},
		authed: true,
	}, &out)
	if err != nil {
		return 0, err
	}

	sel.Clear()
	c.teamChanged()
	return out.InsertedCount, nil
}

// RemoveTeamMember drops a membership by id.
func (c *Client) RemoveTeamMember(ctx context.Context, memberID, employeeEmail string) (int64, error) {
	hrEmail := c.session.Email()
	if hrEmail == "" {
		return 0, ErrNoSession
	}

	q := url.Values{}
	q.Set("hrEmail", hrEmail)
	if employeeEmail != "" {
		q.Set("empEmail", employeeEmail)
	}

	var out struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/team/" + memberID,
		query:  q,
		authed: true,
	}, &out)
	if err != nil {
		return 0, err
	}
	c.teamChanged()
	return out.DeletedCount, nil
}

// MyTeam lists the signed-in HR's team.
func (c *Client) MyTeam(ctx context.Context, pager *Pager) (List[Member], error) {
	path, _, err := c.selfPath("/my-team/")
	if err != nil {
		return List[Member]{}, err
	}
	return paged[Member](ctx, c, path, "employees", nil, pager)
}

// Teammates lists the members of the team the signed-in employee joined.
func (c *Client) Teammates(ctx context.Context, pager *Pager) (List[Member], error) {
	path, _, err := c.selfPath("/my-teams/e/")
	if err != nil {
		return List[Member]{}, err
	}
	return paged[Member](ctx, c, path, "myTeams", nil, pager)
}

// teamChanged drops every cached view a membership change can affect.
// Other users' entries go too since their join status moved.
func (c *Client) teamChanged() {
	c.invalidate("company:", "employee:")
}
