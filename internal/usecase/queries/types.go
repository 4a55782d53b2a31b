package queries

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHistoryLimit = 200
	MaxHistoryLimit     = 500
)

// Read models (DTO for read side)
type RoomView struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PricingPlan string    `json:"pricing_plan"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	HasBookings   bool       `json:"has_bookings"`
	LastBookingAt *time.Time `json:"last_booking_at,omitempty"`
}

type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	RoomID           int        `json:"room_id"`
	RoomName         string     `json:"room_name"`
	Date             string     `json:"date"`
	TimeSlot         string     `json:"time_slot"`
	BookingType      string     `json:"booking_type"`
	Status           string     `json:"status"`
	AmountCents      int64      `json:"amount_cents"`
	PaymentReference string     `json:"payment_reference"`
	CardLast4        *string    `json:"card_last4,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	FailedAt         *time.Time `json:"failed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CheckoutView groups the bookings of one payment reference with a breakdown
// recomputed from the stored amounts.
type CheckoutView struct {
	PaymentReference     string         `json:"payment_reference"`
	BookingType          string         `json:"booking_type"`
	Status               string         `json:"status"`
	Bookings             []*BookingView `json:"bookings"`
	SubtotalCents        int64          `json:"subtotal_cents"`
	TaxCents             int64          `json:"tax_cents"`
	SecurityDepositCents int64          `json:"security_deposit_cents"`
	TotalCents           int64          `json:"total_cents"`
	CreatedAt            time.Time      `json:"created_at"`
}

type AvailabilityView struct {
	Month   string             `json:"month"`
	RoomID  *int               `json:"room_id,omitempty"`
	Entries []AvailabilityItem `json:"entries"`
}

type AvailabilityItem struct {
	Date   string   `json:"date"`
	RoomID int      `json:"room_id"`
	Slots  []string `json:"slots"`
	State  string   `json:"state"`
}
