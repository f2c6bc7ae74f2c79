// AngelaMos | 2026
// assets.go

package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// AssetQuery is the filter, sort and search state of an asset list view
// together with its pager.
type AssetQuery struct {
	filter string
	sort   string
	search string
	pager  *Pager
}

func NewAssetQuery(pageSize int) *AssetQuery {
	return &AssetQuery{pager: NewPager(pageSize)}
}

func (q *AssetQuery) Filter() string { return q.filter }
func (q *AssetQuery) Sort() string   { return q.sort }
func (q *AssetQuery) Text() string   { return q.search }
func (q *AssetQuery) Pager() *Pager  { return q.pager }

// Search starts a new text search: filter and sort are dropped and the
// list goes back to page 1.
func (q *AssetQuery) Search(text string) {
	q.search = strings.TrimSpace(text)
	q.filter = ""
	q.sort = ""
	q.pager.Reset()
}

func (q *AssetQuery) SetFilter(filter string) {
	q.filter = filter
	q.pager.Reset()
}

func (q *AssetQuery) SetSort(sort string) {
	q.sort = sort
	q.pager.Reset()
}

func (q *AssetQuery) values() url.Values {
	v := url.Values{}
	if q.filter != "" {
		v.Set("filter", q.filter)
	}
	if q.sort != "" {
		v.Set("sort", q.sort)
	}
	if q.search != "" {
		v.Set("search", q.search)
	}
	return v
}

// Assets lists the signed-in HR's stock for the query's current page.
func (c *Client) Assets(ctx context.Context, q *AssetQuery) (List[Asset], error) {
	path, _, err := c.selfPath("/assets/hr/")
	if err != nil {
		return List[Asset]{}, err
	}
	return paged[Asset](ctx, c, path, "assets", q.values(), q.pager)
}

// CompanyAssets lists what the signed-in employee can request from their
// HR. Employees outside any team get an empty list.
func (c *Client) CompanyAssets(ctx context.Context, q *AssetQuery) (List[Asset], error) {
	path, _, err := c.selfPath("/assets/e/")
	if err != nil {
		return List[Asset]{}, err
	}
	return paged[Asset](ctx, c, path, "assets", q.values(), q.pager)
}

func (c *Client) Asset(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	if err := c.do(ctx, request{method: http.MethodGet, path: "/asset/" + id, authed: true}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAsset(ctx context.Context, a NewAsset) (string, error) {
	var out struct {
		InsertedID string `json:"insertedId"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/assets", body: a, authed: true}, &out); err != nil {
		return "", err
	}
	c.invalidate("assets:")
	return out.InsertedID, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id string, upd AssetUpdate) (int64, error) {
	var out struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/asset/" + id, body: upd, authed: true}, &out); err != nil {
		return 0, err
	}
	c.invalidate("assets:")
	return out.ModifiedCount, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id string) (int64, error) {
	var out struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := c.do(ctx, request{method: http.MethodDelete, path: "/asset/" + id, authed: true}, &out); err != nil {
		return 0, err
	}
	c.invalidate("assets:")
	return out.DeletedCount, nil
}

// AssetCounts splits the HR's stock by returnability.
func (c *Client) AssetCounts(ctx context.Context) (AssetCount, error) {
	path, email, err := c.selfPath("/assets/count/")
	if err != nil {
		return AssetCount{}, err
	}
	return readThrough(ctx, c, cacheKey("assets", "count", email), func(ctx context.Context) (AssetCount, error) {
		var out AssetCount
		err := c.do(ctx, request{method: http.MethodGet, path: path, authed: true}, &out)
		return out, err
	})
}
