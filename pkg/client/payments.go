// AngelaMos | 2026
// payments.go

package client

import (
	"context"
	"net/http"
)

// Packages is the public price list.
func (c *Client) Packages(ctx context.Context) ([]Package, error) {
	return readThrough(ctx, c, "packages", func(ctx context.Context) ([]Package, error) {
		var out []Package
		err := c.do(ctx, request{method: http.MethodGet, path: "/packages"}, &out)
		return out, err
	})
}

// CreatePaymentIntent starts a charge for pkg. The client secret goes to
// the payment gateway's card form.
func (c *Client) CreatePaymentIntent(ctx context.Context, pkg string) (PaymentIntent, error) {
	var out PaymentIntent
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/create-payment-intent",
		body:   map[string]string{"package": pkg},
		authed: true,
	}, &out)
	return out, err
}

// ConfirmPayment records a charge the gateway reported as succeeded. The
// payment gate and company limits are re-read afterwards.
func (c *Client) ConfirmPayment(ctx context.Context, transactionID, pkg string) (PaymentReceipt, error) {
	var out PaymentReceipt
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/payments",
		body:   map[string]string{"transaction_id": transactionID, "package": pkg},
		authed: true,
	}, &out)
	if err != nil {
		return PaymentReceipt{}, err
	}
	email := c.session.Email()
	c.invalidate(cacheKey("role", email), cacheKey("employee", email), cacheKey("company", email))
	return out, nil
}

func (c *Client) PaymentHistory(ctx context.Context, pager *Pager) (List[Payment], error) {
	path, _, err := c.selfPath("/payments/")
	if err != nil {
		return List[Payment]{}, err
	}
	return paged[Payment](ctx, c, path, "payments", nil, pager)
}
