package request

import (
	"medoffice-booking/internal/domain/booking"
)

type SelectionRequest struct {
	RoomID   int      `json:"room_id" binding:"required,min=1"`
	TimeSlot string   `json:"time_slot" binding:"required,oneof=full morning evening"`
	Dates    []string `json:"dates"`
}

type QuoteRequest struct {
	BookingType string             `json:"booking_type" binding:"required,oneof=daily monthly"`
	Selections  []SelectionRequest `json:"selections" binding:"required,min=1,dive"`
}

// ToDomain accepts selections without dates; pricing skips them.
func (r QuoteRequest) ToDomain() (booking.BookingType, []booking.Selection, error) {
	bookingType, err := booking.ParseBookingType(r.BookingType)
	if err != nil {
		return "", nil, err
	}
	selections, err := toSelections(r.Selections)
	if err != nil {
		return "", nil, err
	}
	return bookingType, selections, nil
}

type PaymentDetailsRequest struct {
	CardLast4      string `json:"card_last4" binding:"omitempty,len=4,numeric"`
	CardholderName string `json:"cardholder_name" binding:"omitempty,max=255"`
}

type CommitBookingRequest struct {
	BookingType    string                `json:"booking_type" binding:"required,oneof=daily monthly"`
	Selections     []SelectionRequest    `json:"selections" binding:"required,min=1,dive"`
	PaymentRef     string                `json:"payment_ref" binding:"required,max=255"`
	PaymentDetails PaymentDetailsRequest `json:"payment_details"`
}

type CommitData struct {
	BookingType booking.BookingType
	Selections  []booking.Selection
	Payment     booking.PaymentInfo
}

func (r CommitBookingRequest) ToDomain() (*CommitData, error) {
	bookingType, err := booking.ParseBookingType(r.BookingType)
	if err != nil {
		return nil, err
	}
	selections, err := toSelections(r.Selections)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateSelections(selections); err != nil {
		return nil, err
	}
	payment, err := booking.NewPaymentInfo(r.PaymentRef, r.PaymentDetails.CardLast4, r.PaymentDetails.CardholderName)
	if err != nil {
		return nil, err
	}
	if payment.Reference == "" {
		return nil, booking.ErrInvalidPayment
	}
	return &CommitData{
		BookingType: bookingType,
		Selections:  selections,
		Payment:     payment,
	}, nil
}

type SaveDraftRequest struct {
	BookingType string             `json:"booking_type" binding:"required,oneof=daily monthly"`
	Selections  []SelectionRequest `json:"selections" binding:"dive"`
}

func (r SaveDraftRequest) ToDomain() (booking.BookingType, []booking.Selection, error) {
	return QuoteRequest(r).ToDomain()
}

const (
	WebhookPaymentSucceeded = "payment_intent.succeeded"
	WebhookPaymentFailed    = "payment_intent.payment_failed"
)

// PaymentWebhookRequest mirrors the processor event. UserID and AmountCents
// echo the intent metadata and amount set by CreateIntent; payment events
// without a user are rejected.
type PaymentWebhookRequest struct {
	Type        string `json:"type" binding:"required"`
	Reference   string `json:"reference" binding:"required,max=255"`
	UserID      string `json:"user_id" binding:"omitempty,uuid"`
	AmountCents int64  `json:"amount_cents" binding:"omitempty,min=0"`
}

type AvailabilityQuery struct {
	RoomID *int   `form:"room_id" binding:"omitempty,min=1"`
	Month  string `form:"month" binding:"required"`
}

type SlotQuery struct {
	Date string `form:"date" binding:"required"`
	Slot string `form:"slot" binding:"required,oneof=full morning evening"`
}

type MonthlyDatesQuery struct {
	Start string `form:"start" binding:"required"`
	Slot  string `form:"slot" binding:"required,oneof=full morning evening"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

func toSelections(in []SelectionRequest) ([]booking.Selection, error) {
	out := make([]booking.Selection, 0, len(in))
	for _, s := range in {
		sel, err := booking.NewSelection(s.RoomID, s.TimeSlot, s.Dates)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}
