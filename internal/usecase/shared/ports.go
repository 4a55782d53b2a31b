package shared

import (
	"context"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errs.New("draft not found")

// AvailabilityCache never reports errors; a failing backend behaves as a miss.
type AvailabilityCache interface {
	Get(ctx context.Context, month booking.Month, roomID *int) ([]booking.Occupancy, bool)
	// Generation is read before loading a month; Set drops the snapshot when
	// an Invalidate of that month happened in between.
	Generation(ctx context.Context, month booking.Month) (int64, bool)
	Set(ctx context.Context, month booking.Month, roomID *int, records []booking.Occupancy, generation int64)
	Invalidate(ctx context.Context, months []booking.Month, roomIDs []int)
}

type DraftStore interface {
	Save(ctx context.Context, draft *booking.Draft) error
	// Load returns ErrDraftNotFound when the user has no live draft.
	Load(ctx context.Context, userID uuid.UUID) (*booking.Draft, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingFailed    = "booking.failed"
)

type BookingEvent struct {
	Type             string      `json:"type"`
	PaymentReference string      `json:"payment_reference"`
	BookingIDs       []uuid.UUID `json:"booking_ids"`
	UserID           uuid.UUID   `json:"user_id"`
	OccurredAt       time.Time   `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type PaymentIntent struct {
	Reference    string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount booking.Money, currency string, metadata map[string]string) (*PaymentIntent, error)
}
