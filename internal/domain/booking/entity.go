package booking

import (
	"strings"
	"time"
	"unicode"

	"medoffice-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

// PaymentInfo links bookings to the processor charge that pays for them.
type PaymentInfo struct {
	Reference      string
	CardLast4      string
	CardholderName string
}

func NewPaymentInfo(reference, cardLast4, cardholderName string) (PaymentInfo, error) {
	p := PaymentInfo{
		Reference:      strings.TrimSpace(reference),
		CardLast4:      strings.TrimSpace(cardLast4),
		CardholderName: strings.TrimSpace(cardholderName),
	}
	if p.CardLast4 != "" {
		if len(p.CardLast4) != 4 || strings.IndexFunc(p.CardLast4, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return PaymentInfo{}, ErrInvalidPayment
		}
	}
	return p, nil
}

type Booking struct {
	id          uuid.UUID
	userID      uuid.UUID
	roomID      int
	date        Date
	slot        TimeSlot
	bookingType BookingType
	amount      Money
	status      Status
	payment     PaymentInfo
	paidAt      *time.Time
	failedAt    *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// Checkout is the set of pending bookings produced by one commit.
type Checkout struct {
	Bookings []*Booking
	Quote    Quote
}

func (c *Checkout) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Bookings))
	for i, b := range c.Bookings {
		ids[i] = b.id
	}
	return ids
}

// NewCheckout prices the selections and expands them into one pending
// booking per (room, date, slot). Each selection's contribution is split
// evenly over its dates.
func NewCheckout(
	services *Services,
	userID uuid.UUID,
	selections []Selection,
	bookingType BookingType,
	payment PaymentInfo,
) (*Checkout, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	if err := ValidateSelections(selections); err != nil {
		return nil, err
	}

	quote, err := services.PriceCalculator.Quote(selections, bookingType)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	bookings := make([]*Booking, 0, Units(selections))
	lineIdx := 0
	for _, sel := range selections {
		if !sel.HasDates() {
			continue
		}
		line := quote.Lines[lineIdx]
		lineIdx++
		if line.Contribution.Cents() < 0 {
			return nil, ErrNegativePrice
		}
		amounts := line.Contribution.Split(len(sel.Dates))
		for i, d := range sel.Dates {
			bookings = append(bookings, &Booking{
				id:          uuid.New(),
				userID:      userID,
				roomID:      sel.RoomID,
				date:        d,
				slot:        sel.Slot,
				bookingType: bookingType,
				amount:      amounts[i],
				status:      StatusPending,
				payment:     payment,
				createdAt:   now,
				updatedAt:   now,
			})
		}
	}

	return &Checkout{Bookings: bookings, Quote: quote}, nil
}

func ReconstructBooking(
	id, userID uuid.UUID,
	roomID int,
	date Date,
	slot TimeSlot,
	bookingType BookingType,
	amount Money,
	status Status,
	payment PaymentInfo,
	paidAt, failedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		userID:      userID,
		roomID:      roomID,
		date:        date,
		slot:        slot,
		bookingType: bookingType,
		amount:      amount,
		status:      status,
		payment:     payment,
		paidAt:      paidAt,
		failedAt:    failedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (b *Booking) Confirm(now time.Time) error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.paidAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Fail(now time.Time) error {
	if !b.status.CanTransitionTo(StatusFailed) {
		return ErrInvalidTransition
	}
	b.status = StatusFailed
	b.failedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Occupancy() Occupancy {
	return Occupancy{RoomID: b.roomID, Date: b.date, Slot: b.slot, Status: b.status}
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) RoomID() int              { return b.roomID }
func (b *Booking) Date() Date               { return b.date }
func (b *Booking) Slot() TimeSlot           { return b.slot }
func (b *Booking) BookingType() BookingType { return b.bookingType }
func (b *Booking) Amount() Money            { return b.amount }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) Payment() PaymentInfo     { return b.payment }
func (b *Booking) PaidAt() *time.Time       { return b.paidAt }
func (b *Booking) FailedAt() *time.Time     { return b.failedAt }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
