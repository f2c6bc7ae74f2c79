// AngelaMos | 2026
// list.go

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// getList reads a {<key>: [...], "count": n} listing.
func getList[T any](
	ctx context.Context,
	c *Client,
	path, key string,
	query url.Values,
) (List[T], error) {
	var raw map[string]json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		query:  query,
		authed: true,
	}, &raw)
	if err != nil {
		return List[T]{}, err
	}

	out := List[T]{Items: []T{}}
	if items, ok := raw[key]; ok && string(items) != "null" {
		if err := json.Unmarshal(items, &out.Items); err != nil {
			return List[T]{}, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	if count, ok := raw["count"]; ok {
		if err := json.Unmarshal(count, &out.Count); err != nil {
			return List[T]{}, fmt.Errorf("decode count: %w", err)
		}
	}
	return out, nil
}

// paged runs a listing for the pager's current page and feeds the total
// back into it. When the total shrank under the current page the pager
// clamps, and the clamped page is fetched once more.
func paged[T any](
	ctx context.Context,
	c *Client,
	path, key string,
	query url.Values,
	pager *Pager,
) (List[T], error) {
	if query == nil {
		query = url.Values{}
	}
	if pager == nil {
		return getList[T](ctx, c, path, key, query)
	}

	fetch := func() (List[T], error) {
		for k, v := range pageQuery(pager.Page(), pager.Size()) {
			query[k] = v
		}
		return getList[T](ctx, c, path, key, query)
	}

	list, err := fetch()
	if err != nil {
		return List[T]{}, err
	}
	if !pager.SetCount(list.Count) {
		return list, nil
	}

	list, err = fetch()
	if err != nil {
		return List[T]{}, err
	}
	pager.SetCount(list.Count)
	return list, nil
}
