package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// PaymentApprovedEvent announces a settled payment. Consumers (email worker,
// SMS gateway) live outside this service.
type PaymentApprovedEvent struct {
	PaymentID uint      `json:"payment_id"`
	BookingID uint      `json:"booking_id"`
	StudentID uint      `json:"student_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
}

// Notifier publishes payment lifecycle events. Implementations must be
// best-effort: a publish failure is logged by the caller and never rolls
// back the financial state change that triggered it.
type Notifier interface {
	PaymentApproved(ctx context.Context, event PaymentApprovedEvent) error
}

const paymentApprovedSubject = "eduly.payments.approved"

type natsNotifier struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSNotifier wraps a NATS connection as a Notifier.
func NewNATSNotifier(conn *nats.Conn, logger zerolog.Logger) Notifier {
	return &natsNotifier{
		conn:   conn,
		logger: logger.With().Str("component", "nats_notifier").Logger(),
	}
}

func (n *natsNotifier) PaymentApproved(_ context.Context, event PaymentApprovedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.conn.Publish(paymentApprovedSubject, payload)
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that drops every event. Used when no
// NATS URL is configured and in tests.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) PaymentApproved(context.Context, PaymentApprovedEvent) error {
	return nil
}
