// AngelaMos | 2026
// requests.go

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type RequestQuery struct {
	Search string
	Status string
}

func (q RequestQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// RequestAsset asks the signed-in employee's HR for one unit of an asset.
func (c *Client) RequestAsset(ctx context.Context, assetID, notes string) (string, error) {
	var out struct {
		InsertedID string `json:"insertedId"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/asset-requests",
		body:   map[string]string{"asset_id": assetID, "notes": notes},
		authed: true,
	}, &out)
	if err != nil {
		return "", err
	}
	c.invalidate("assets:")
	return out.InsertedID, nil
}

// MonthlyRequests lists the signed-in employee's requests made this
// calendar month.
func (c *Client) MonthlyRequests(ctx context.Context, pager *Pager) (List[AssetRequest], error) {
	path, _, err := c.selfPath("/assets/e/monthly-request/")
	if err != nil {
		return List[AssetRequest]{}, err
	}
	return paged[AssetRequest](ctx, c, path, "myAssets", nil, pager)
}

func (c *Client) MyRequests(ctx context.Context, q RequestQuery, pager *Pager) (List[AssetRequest], error) {
	path, _, err := c.selfPath("/asset-requests/e/")
	if err != nil {
		return List[AssetRequest]{}, err
	}
	return paged[AssetRequest](ctx, c, path, "requests", q.values(), pager)
}

// IncomingRequests lists requests made to the signed-in HR. Search also
// matches the requester's name and email.
func (c *Client) IncomingRequests(ctx context.Context, search string, pager *Pager) (List[AssetRequest], error) {
	path, _, err := c.selfPath("/asset-requests/hr/")
	if err != nil {
		return List[AssetRequest]{}, err
	}
	return paged[AssetRequest](ctx, c, path, "requests", RequestQuery{Search: search}.values(), pager)
}

// SetRequestStatus moves a request along its lifecycle. HR approves or
// rejects; the requester cancels or returns.
func (c *Client) SetRequestStatus(ctx context.Context, id, status string) (int64, error) {
	var out struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/asset-request/" + id + "/status",
		body:   map[string]string{"status": status},
		authed: true,
	}, &out)
	if err != nil {
		return 0, err
	}
	c.invalidate("assets:")
	return out.ModifiedCount, nil
}

// RequestSlip downloads the printable PDF for a request.
func (c *Client) RequestSlip(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodGet,
		path:   "/asset-request/" + id + "/pdf",
		authed: true,
		accept: "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read slip: %w", err)
	}
	return data, nil
}
