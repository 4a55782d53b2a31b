//go:build unit || e2e

package builder

import (
	reqdto "medoffice-booking/internal/handler/dto/request"
)

// BookingBuilder assembles request bodies for quote and commit calls.
// Default dates 2024-06-10..13 are Monday to Thursday.
type BookingBuilder struct {
	BookingType string
	Selections  []reqdto.SelectionRequest
	PaymentRef  string
	CardLast4   string
	Cardholder  string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		BookingType: "daily",
		Selections: []reqdto.SelectionRequest{
			{
				RoomID:   1,
				TimeSlot: "full",
				Dates:    []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13"},
			},
		},
		PaymentRef: "pi_test_123",
		CardLast4:  "4242",
		Cardholder: "Grace Hopper",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithBookingType(t string) *BookingBuilder {
	b.BookingType = t
	return b
}

func (b *BookingBuilder) WithSelection(roomID int, slot string, dates ...string) *BookingBuilder {
	b.Selections = []reqdto.SelectionRequest{{RoomID: roomID, TimeSlot: slot, Dates: dates}}
	return b
}

func (b *BookingBuilder) AddSelection(roomID int, slot string, dates ...string) *BookingBuilder {
	b.Selections = append(b.Selections, reqdto.SelectionRequest{RoomID: roomID, TimeSlot: slot, Dates: dates})
	return b
}

func (b *BookingBuilder) WithPaymentRef(ref string) *BookingBuilder {
	b.PaymentRef = ref
	return b
}

func (b *BookingBuilder) BuildQuoteDTO() reqdto.QuoteRequest {
	return reqdto.QuoteRequest{
		BookingType: b.BookingType,
		Selections:  b.Selections,
	}
}

func (b *BookingBuilder) BuildCommitDTO() reqdto.CommitBookingRequest {
	return reqdto.CommitBookingRequest{
		BookingType: b.BookingType,
		Selections:  b.Selections,
		PaymentRef:  b.PaymentRef,
		PaymentDetails: reqdto.PaymentDetailsRequest{
			CardLast4:      b.CardLast4,
			CardholderName: b.Cardholder,
		},
	}
}
