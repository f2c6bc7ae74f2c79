// AngelaMos | 2026
// gateway.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
)

const IntentSucceeded = string(stripe.PaymentIntentStatusSucceeded)

// Intent is the gateway's view of a charge.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
	Metadata     map[string]string
}

// Gateway creates and looks up Stripe payment intents. Card details never
// pass through this service.
type Gateway struct {
	intents  paymentintent.Client
	currency string
}

func NewGateway(cfg config.PaymentConfig, logger *slog.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:    &http.Client{Timeout: timeout},
		LeveledLogger: stripeLogger{logger: logger.With("component", "stripe")},
	}
	if cfg.GatewayURL != "" {
		backendCfg.URL = stripe.String(cfg.GatewayURL)
	}

	return &Gateway{
		intents: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		currency: cfg.Currency,
	}
}

func (g *Gateway) Currency() string {
	return g.currency
}

// CreateIntent asks the gateway for a new intent of amount minor units.
// Every call carries a fresh idempotency key so a retried request cannot
// create a second charge.
func (g *Gateway) CreateIntent(
	ctx context.Context,
	amount int64,
	metadata map[string]string,
) (*Intent, error) {
	key, err := core.GenerateSecureToken(24)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(key)
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", gatewayError(err))
	}
	return toIntent(pi), nil
}

func (g *Gateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("get payment intent: %w", gatewayError(err))
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}

// gatewayError maps a missing intent onto core.ErrNotFound and keeps the
// gateway's code and message for everything else.
func gatewayError(err error) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		return err
	}
	if se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing {
		return core.ErrNotFound
	}
	return fmt.Errorf("gateway %d %s: %s", se.HTTPStatusCode, se.Code, se.Msg)
}

// stripeLogger routes the Stripe client's own logging into slog.
type stripeLogger struct {
	logger *slog.Logger
}

func (l stripeLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
