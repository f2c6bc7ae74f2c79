// AngelaMos | 2026
// events.go

package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	TeamMemberAdded      = "team.member_added"
	TeamMemberRemoved    = "team.member_removed"
	AssetRequested       = "asset.requested"
	RequestStatusChanged = "asset_request.status_changed"
	PaymentSucceeded     = "payment.succeeded"
	EmployeeRegistered   = "employee.registered"
)

// Envelope is the JSON body of every message published to the exchange.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(eventType string, payload any) Envelope {
	return Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	env := NewEnvelope(eventType, payload)
	p.logger.InfoContext(ctx, "domain event",
		"event_id", env.ID,
		"type", env.Type,
	)
	return nil
}

// Emit publishes and only logs failures to logger. Domain writes have
// already committed when events go out, so a broker outage must not fail
// them.
func Emit(
	ctx context.Context,
	logger *slog.Logger,
	p Publisher,
	eventType string,
	payload any,
) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, payload); err != nil && logger != nil {
		logger.WarnContext(ctx, "publish event failed",
			"type", eventType,
			"error", err,
		)
	}
}

// Observed calls observe for every event it publishes successfully.
type Observed struct {
	Publisher
	observe func(eventType string)
}

func WithObserver(p Publisher, observe func(eventType string)) *Observed {
	return &Observed{Publisher: p, observe: observe}
}

func (o *Observed) Publish(ctx context.Context, eventType string, payload any) error {
	if err := o.Publisher.Publish(ctx, eventType, payload); err != nil {
		return err
	}
	if o.observe != nil {
		o.observe(eventType)
	}
	return nil
}
