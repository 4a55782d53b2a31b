package commands

import (
	"context"
	"log/slog"
	"strconv"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNothingToCharge         = errs.New("quote total must be positive")
	ErrPaymentReferenceUnknown = errs.New("no pending bookings for payment reference")
	ErrInvalidWebhookUser      = errs.New("webhook user_id is not a valid id")
)

type PaymentIntentResult struct {
	Intent *shared.PaymentIntent
	Quote  booking.Quote
}

type WebhookResult struct {
	Handled    bool
	Status     booking.Status
	BookingIDs []uuid.UUID
}

type PaymentCommands interface {
	CreateIntent(ctx context.Context, req reqdto.QuoteRequest, userID uuid.UUID) (*PaymentIntentResult, error)
	HandleWebhook(ctx context.Context, req reqdto.PaymentWebhookRequest) (*WebhookResult, error)
}

type paymentCommandsImpl struct {
	uow       shared.UnitOfWork
	services  *booking.Services
	processor shared.PaymentProcessor
	publisher shared.EventPublisher
	cache     shared.AvailabilityCache
	currency  string
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	processor shared.PaymentProcessor,
	publisher shared.EventPublisher,
	cache shared.AvailabilityCache,
	currency string,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:       uow,
		services:  services,
		processor: processor,
		publisher: publisher,
		cache:     cache,
		currency:  currency,
	}
}

// CreateIntent prices the selections on the server; the client never
// supplies the amount.
func (p *paymentCommandsImpl) CreateIntent(ctx context.Context, req reqdto.QuoteRequest, userID uuid.UUID) (*PaymentIntentResult, error) {
	bookingType, selections, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	quote, err := p.services.PriceCalculator.Quote(selections, bookingType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if !quote.Total.IsPositive() {
		return nil, errs.Mark(ErrNothingToCharge, errs.ErrValidation)
	}

	intent, err := p.processor.CreateIntent(ctx, quote.Total, p.currency, map[string]string{
		"user_id":      userID.String(),
		"booking_type": bookingType.String(),
		"units":        strconv.Itoa(booking.Units(selections)),
	})
	if err != nil {
		slog.Error("failed to create payment intent", "user_id", userID, "amount_cents", quote.Total.Cents(), "error", err.Error())
		return nil, errs.Mark(err, errs.ErrPayment)
	}

	slog.Info("payment intent created", "user_id", userID, "reference", intent.Reference, "amount_cents", intent.AmountCents)
	return &PaymentIntentResult{Intent: intent, Quote: quote}, nil
}

// HandleWebhook moves the intent owner's pending bookings under the reference
// to confirmed or failed. A success whose amount does not cover the bookings
// fails them instead. Unknown event types are acknowledged and ignored.
func (p *paymentCommandsImpl) HandleWebhook(ctx context.Context, req reqdto.PaymentWebhookRequest) (*WebhookResult, error) {
	var (
		next      booking.Status
		eventType string
	)
	switch req.Type {
	case reqdto.WebhookPaymentSucceeded:
		next, eventType = booking.StatusConfirmed, shared.EventBookingConfirmed
	case reqdto.WebhookPaymentFailed:
		next, eventType = booking.StatusFailed, shared.EventBookingFailed
	default:
		slog.Info("ignoring payment webhook", "type", req.Type, "reference", req.Reference)
		return &WebhookResult{Handled: false}, nil
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil || userID == uuid.Nil {
		return nil, errs.Mark(ErrInvalidWebhookUser, errs.ErrValidation)
	}

	var updated []*booking.Booking
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pending, err := tx.Reads().PendingByPaymentRef(ctx, userID, req.Reference)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return ErrPaymentReferenceUnknown
		}

		if next == booking.StatusConfirmed && req.AmountCents > 0 {
			if owed := pendingTotal(pending); owed.Cents() > req.AmountCents {
				slog.Warn("payment does not cover its bookings", "reference", req.Reference, "user_id", userID,
					"paid_cents", req.AmountCents, "owed_cents", owed.Cents())
				next, eventType = booking.StatusFailed, shared.EventBookingFailed
			}
		}

		now := p.services.Clock.Now()
		for _, b := range pending {
			var transitionErr error
			if next == booking.StatusConfirmed {
				transitionErr = b.Confirm(now)
			} else {
				transitionErr = b.Fail(now)
			}
			if transitionErr != nil {
				return transitionErr
			}
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), pending); err != nil {
			return err
		}
		updated = pending
		return nil
	})
	if err != nil {
		switch {
		case errs.Is(err, ErrPaymentReferenceUnknown):
			// redelivered events find nothing left in pending
			slog.Warn("payment webhook matched no pending bookings", "type", req.Type, "reference", req.Reference)
			return &WebhookResult{Handled: false}, nil
		case errs.Is(err, booking.ErrInvalidTransition):
			return nil, errs.Mark(err, errs.ErrConflict)
		default:
			slog.Error("failed to apply payment webhook", "type", req.Type, "reference", req.Reference, "error", err.Error())
			return nil, errs.Mark(err, errs.ErrStorageUnavailable)
		}
	}

	ids := make([]uuid.UUID, len(updated))
	dates := make([]booking.Date, len(updated))
	rooms := make([]int, 0, len(updated))
	for i, b := range updated {
		ids[i] = b.ID()
		dates[i] = b.Date()
		rooms = append(rooms, b.RoomID())
	}
	p.cache.Invalidate(ctx, booking.MonthsOf(dates), rooms)

	event := shared.BookingEvent{
		Type:             eventType,
		PaymentReference: req.Reference,
		BookingIDs:       ids,
		UserID:           userID,
		OccurredAt:       p.services.Clock.Now(),
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish booking event", "type", eventType, "reference", req.Reference, "error", err.Error())
	}

	slog.Info("payment webhook applied", "type", req.Type, "reference", req.Reference, "status", next.String(), "bookings", len(updated))
	return &WebhookResult{Handled: true, Status: next, BookingIDs: ids}, nil
}

func pendingTotal(bookings []*booking.Booking) booking.Money {
	var total booking.Money
	for _, b := range bookings {
		total = total.Add(b.Amount())
	}
	return total
}
