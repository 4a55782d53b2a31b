package response

import (
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Amounts are sent both in cents and as a two-decimal dollar string.
type QuoteResponse struct {
	BookingType          string              `json:"booking_type"`
	Lines                []QuoteLineResponse `json:"lines"`
	SubtotalCents        int64               `json:"subtotal_cents"`
	TaxCents             int64               `json:"tax_cents"`
	SecurityDepositCents int64               `json:"security_deposit_cents"`
	TotalCents           int64               `json:"total_cents"`
	Subtotal             string              `json:"subtotal"`
	Tax                  string              `json:"tax"`
	SecurityDeposit      string              `json:"security_deposit"`
	Total                string              `json:"total"`
}

type QuoteLineResponse struct {
	RoomID            int    `json:"room_id"`
	TimeSlot          string `json:"time_slot"`
	DateCount         int    `json:"date_count"`
	BasePriceCents    int64  `json:"base_price_cents"`
	ContributionCents int64  `json:"contribution_cents"`
}

func FromQuote(q booking.Quote) *QuoteResponse {
	lines := make([]QuoteLineResponse, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = QuoteLineResponse{
			RoomID:            l.RoomID,
			TimeSlot:          l.Slot.String(),
			DateCount:         l.DateCount,
			BasePriceCents:    l.BasePrice.Cents(),
			ContributionCents: l.Contribution.Cents(),
		}
	}
	return &QuoteResponse{
		BookingType:          q.BookingType.String(),
		Lines:                lines,
		SubtotalCents:        q.Subtotal.Cents(),
		TaxCents:             q.Tax.Cents(),
		SecurityDepositCents: q.SecurityDeposit.Cents(),
		TotalCents:           q.Total.Cents(),
		Subtotal:             q.Subtotal.String(),
		Tax:                  q.Tax.String(),
		SecurityDeposit:      q.SecurityDeposit.String(),
		Total:                q.Total.String(),
	}
}

type CommitResponse struct {
	BookingIDs       []uuid.UUID    `json:"booking_ids"`
	PaymentReference string         `json:"payment_reference"`
	Status           string         `json:"status"`
	Quote            *QuoteResponse `json:"quote"`
}

func FromCommitResult(r *commands.CommitResult) *CommitResponse {
	return &CommitResponse{
		BookingIDs:       r.BookingIDs,
		PaymentReference: r.PaymentReference,
		Status:           booking.StatusPending.String(),
		Quote:            FromQuote(r.Quote),
	}
}

type PaymentIntentResponse struct {
	Reference    string         `json:"reference"`
	ClientSecret string         `json:"client_secret"`
	AmountCents  int64          `json:"amount_cents"`
	Currency     string         `json:"currency"`
	Quote        *QuoteResponse `json:"quote"`
}

func FromPaymentIntentResult(r *commands.PaymentIntentResult) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		Reference:    r.Intent.Reference,
		ClientSecret: r.Intent.ClientSecret,
		AmountCents:  r.Intent.AmountCents,
		Currency:     r.Intent.Currency,
		Quote:        FromQuote(r.Quote),
	}
}

type WebhookResponse struct {
	Received   bool        `json:"received"`
	Status     string      `json:"status,omitempty"`
	BookingIDs []uuid.UUID `json:"booking_ids,omitempty"`
}

func FromWebhookResult(r *commands.WebhookResult) *WebhookResponse {
	res := &WebhookResponse{Received: true}
	if r.Handled {
		res.Status = r.Status.String()
		res.BookingIDs = r.BookingIDs
	}
	return res
}

type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      int        `json:"room_id"`
	RoomName    string     `json:"room_name"`
	Date        string     `json:"date"`
	TimeSlot    string     `json:"time_slot"`
	BookingType string     `json:"booking_type"`
	Status      string     `json:"status"`
	AmountCents int64      `json:"amount_cents"`
	CardLast4   *string    `json:"card_last4,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CheckoutResponse struct {
	PaymentReference     string            `json:"payment_reference"`
	BookingType          string            `json:"booking_type"`
	Status               string            `json:"status"`
	Bookings             []BookingResponse `json:"bookings"`
	SubtotalCents        int64             `json:"subtotal_cents"`
	TaxCents             int64             `json:"tax_cents"`
	SecurityDepositCents int64             `json:"security_deposit_cents"`
	TotalCents           int64             `json:"total_cents"`
	Total                string            `json:"total"`
	CreatedAt            time.Time         `json:"created_at"`
}

func FromCheckoutViews(views []*queries.CheckoutView) ([]*CheckoutResponse, error) {
	res := make([]*CheckoutResponse, 0, len(views))
	for _, v := range views {
		var item CheckoutResponse
		if err := copier.CopyWithOption(&item, v, copier.Option{DeepCopy: true}); err != nil {
			return nil, err
		}
		item.Total = booking.NewMoney(v.TotalCents).String()
		res = append(res, &item)
	}
	return res, nil
}

type SelectionResponse struct {
	RoomID   int      `json:"room_id"`
	TimeSlot string   `json:"time_slot"`
	Dates    []string `json:"dates"`
}

type DraftResponse struct {
	BookingType string              `json:"booking_type"`
	Selections  []SelectionResponse `json:"selections"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func FromDraft(d *booking.Draft) *DraftResponse {
	selections := make([]SelectionResponse, len(d.Selections))
	for i, s := range d.Selections {
		dates := make([]string, len(s.Dates))
		for j, date := range s.Dates {
			dates[j] = date.String()
		}
		selections[i] = SelectionResponse{RoomID: s.RoomID, TimeSlot: s.Slot.String(), Dates: dates}
	}
	return &DraftResponse{
		BookingType: d.BookingType.String(),
		Selections:  selections,
		UpdatedAt:   d.UpdatedAt,
	}
}
