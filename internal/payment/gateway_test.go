// AngelaMos | 2026
// gateway_test.go

package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
)

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGateway(config.PaymentConfig{
		GatewayURL: srv.URL + "/v1/",
		SecretKey:  "sk_test_123",
		Currency:   "usd",
		Timeout:    time.Second,
	}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func writeStripeError(w http.ResponseWriter, status int, typ, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"type": typ, "code": code, "message": msg},
	})
}

func TestCreateIntent(t *testing.T) {
	var keys []string

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "800", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "hr@acme.io", r.PostForm.Get("metadata[hr_email]"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		keys = append(keys, r.Header.Get("Idempotency-Key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "pi_1",
			"object":        "payment_intent",
			"client_secret": "pi_1_secret",
			"amount":        800,
			"currency":      "usd",
			"status":        "requires_payment_method",
			"metadata":      map[string]string{"hr_email": "hr@acme.io"},
		})
	})

	for range 2 {
		intent, err := g.CreateIntent(context.Background(), 800, map[string]string{"hr_email": "hr@acme.io"})
		require.NoError(t, err)
		assert.Equal(t, "pi_1", intent.ID)
		assert.Equal(t, "pi_1_secret", intent.ClientSecret)
		assert.Equal(t, int64(800), intent.Amount)
		assert.Equal(t, "usd", intent.Currency)
		assert.Equal(t, "hr@acme.io", intent.Metadata["hr_email"])
	}

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestGetIntentSucceeded(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "pi_1",
			"object":   "payment_intent",
			"amount":   1500,
			"currency": "usd",
			"status":   "succeeded",
		})
	})

	intent, err := g.GetIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, IntentSucceeded, intent.Status)
	assert.Equal(t, int64(1500), intent.Amount)
}

func TestGetIntentNotFound(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_missing", r.URL.Path)
		writeStripeError(w, http.StatusNotFound,
			"invalid_request_error", "resource_missing", "No such payment_intent: 'pi_missing'")
	})

	_, err := g.GetIntent(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGatewayErrorBody(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		writeStripeError(w, http.StatusPaymentRequired,
			"card_error", "card_declined", "Your card was declined.")
	})

	_, err := g.GetIntent(context.Background(), "pi_1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "card_declined")
	assert.Contains(t, err.Error(), "Your card was declined.")
}
