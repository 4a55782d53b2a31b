package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/metrics"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	commitEndpoint = "POST /api/bookings"
	idempotencyTTL = 24 * time.Hour
)

var (
	ErrRoomNotFound          = errs.New("room not found")
	ErrRoomUnavailable       = errs.New("room is not available for booking")
	ErrIdempotencyInProgress = errs.New("a request with this idempotency key is still in progress")
	ErrIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
	ErrPaymentRefTaken       = errs.New("payment reference belongs to another account")
)

type CommitResult struct {
	BookingIDs       []uuid.UUID
	Quote            booking.Quote
	PaymentReference string
	IsReplayed       bool
}

type BookingCommands interface {
	Commit(ctx context.Context, req reqdto.CommitBookingRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CommitResult, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	services *booking.Services
	cache    shared.AvailabilityCache
	drafts   shared.DraftStore
	metrics  *metrics.Metrics
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	cache shared.AvailabilityCache,
	drafts shared.DraftStore,
	m *metrics.Metrics,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		services: services,
		cache:    cache,
		drafts:   drafts,
		metrics:  m,
	}
}

// Commit re-checks every requested slot against freshly loaded occupancy
// inside one transaction and writes all pending bookings or none.
func (b *bookingCommandsImpl) Commit(
	ctx context.Context,
	req reqdto.CommitBookingRequest,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*CommitResult, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}

	data, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	checkout, err := booking.NewCheckout(b.services, userID, data.Selections, data.BookingType, data.Payment)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	logArgs := []any{
		"user_id", userID,
		"booking_type", data.BookingType.String(),
		"selections", summarize(data.Selections),
		"payment_reference", data.Payment.Reference,
	}

	var replayedIDs []uuid.UUID
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayedIDs = nil

		if idempotencyKey != nil {
			ids, claimErr := b.claimIdempotencyKey(ctx, tx, *idempotencyKey, userID, requestHash(req))
			if claimErr != nil {
				return claimErr
			}
			if ids != nil {
				replayedIDs = ids
				return nil
			}
		}

		if err := b.ensureRoomsBookable(ctx, tx, data.Selections); err != nil {
			return err
		}

		if err := tx.Bookings().LockDays(ctx, tx.DB(), slotKeys(data.Selections)); err != nil {
			return err
		}

		from, to := dateRange(data.Selections)
		records, err := tx.Reads().OccupancyFor(ctx, roomIDs(data.Selections), from, to)
		if err != nil {
			return err
		}
		if conflicts := booking.FindConflicts(data.Selections, booking.NewAvailabilityIndex(records)); len(conflicts) > 0 {
			return booking.NewConflictError(conflicts)
		}

		if err := tx.Bookings().InsertMany(ctx, tx.DB(), checkout.Bookings); err != nil {
			switch {
			case infra.IsKind(err, infra.KindDuplicateKey):
				return booking.NewConflictError(requestedPairs(data.Selections))
			case infra.IsKind(err, infra.KindReferenceTaken):
				return errs.Wrap(ErrPaymentRefTaken, data.Payment.Reference)
			}
			return err
		}

		if err := tx.Users().MarkHasBookings(ctx, tx.DB(), userID, b.services.Clock.Now()); err != nil {
			return err
		}

		if idempotencyKey != nil {
			return tx.Idempotency().Complete(ctx, tx.DB(), *idempotencyKey, userID, checkout.IDs())
		}
		return nil
	})
	if err != nil {
		return nil, b.commitFailed(err, logArgs)
	}

	if replayedIDs != nil {
		slog.Info("checkout replayed from idempotency key", logArgs...)
		return &CommitResult{
			BookingIDs:       replayedIDs,
			Quote:            checkout.Quote,
			PaymentReference: data.Payment.Reference,
			IsReplayed:       true,
		}, nil
	}

	b.metrics.IncCommit(metrics.CommitCommitted)
	b.cache.Invalidate(ctx, booking.MonthsOf(booking.AllDates(data.Selections)), roomIDs(data.Selections))
	if err := b.drafts.Delete(ctx, userID); err != nil {
		slog.Warn("failed to clear draft after checkout", "user_id", userID, "error", err.Error())
	}

	slog.Info("checkout committed", append(logArgs, "bookings", len(checkout.Bookings))...)

	return &CommitResult{
		BookingIDs:       checkout.IDs(),
		Quote:            checkout.Quote,
		PaymentReference: data.Payment.Reference,
	}, nil
}

// claimIdempotencyKey returns the booking ids of a completed earlier request
// with the same key, or nil when this request now owns the key.
func (b *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	hash string,
) ([]uuid.UUID, error) {
	now := b.services.Clock.Now()
	expiresAt := now.Add(idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, commitEndpoint, hash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}

	if now.After(existing.ExpiresAt) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, hash, expiresAt)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if existing.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if len(existing.BookingIDs) == 0 {
			return nil, errs.New("completed request missing booking ids")
		}
		return existing.BookingIDs, nil
	default:
		return nil, ErrIdempotencyInProgress
	}
}

func (b *bookingCommandsImpl) ensureRoomsBookable(ctx context.Context, tx shared.Tx, selections []booking.Selection) error {
	ids := roomIDs(selections)
	rooms, err := tx.Reads().RoomsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		rm, ok := rooms[id]
		if !ok {
			return errs.Wrapf(ErrRoomNotFound, "room %d", id)
		}
		if !rm.IsAvailable {
			return errs.Wrapf(ErrRoomUnavailable, "room %d", id)
		}
	}
	return nil
}

func (b *bookingCommandsImpl) commitFailed(err error, logArgs []any) error {
	var conflictErr *booking.ConflictError
	switch {
	case errs.As(err, &conflictErr):
		b.metrics.IncCommit(metrics.CommitConflict)
		slog.Info("checkout rejected: slots taken", append(logArgs, "conflicts", len(conflictErr.Conflicts))...)
		return errs.Mark(err, errs.ErrConflict)
	case errs.Is(err, ErrIdempotencyInProgress):
		slog.Info("checkout rejected: idempotency key in progress", logArgs...)
		return errs.Mark(err, errs.ErrConflict)
	case errs.Is(err, ErrRoomNotFound), errs.Is(err, ErrRoomUnavailable), errs.Is(err, ErrIdempotencyKeyReused),
		errs.Is(err, ErrPaymentRefTaken):
		slog.Info("checkout rejected", append(logArgs, "error", err.Error())...)
		return errs.Mark(err, errs.ErrValidation)
	default:
		b.metrics.IncCommit(metrics.CommitError)
		slog.Error("checkout failed", append(logArgs, "error", err.Error())...)
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
}

func requestHash(req reqdto.CommitBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func roomIDs(selections []booking.Selection) []int {
	seen := make(map[int]struct{}, len(selections))
	ids := make([]int, 0, len(selections))
	for _, s := range selections {
		if !s.HasDates() {
			continue
		}
		if _, ok := seen[s.RoomID]; ok {
			continue
		}
		seen[s.RoomID] = struct{}{}
		ids = append(ids, s.RoomID)
	}
	return ids
}

func slotKeys(selections []booking.Selection) []booking.SlotKey {
	keys := make([]booking.SlotKey, 0, booking.Units(selections))
	for _, s := range selections {
		for _, d := range s.Dates {
			keys = append(keys, booking.SlotKey{Date: d, RoomID: s.RoomID})
		}
	}
	return keys
}

func dateRange(selections []booking.Selection) (booking.Date, booking.Date) {
	var from, to booking.Date
	for _, d := range booking.AllDates(selections) {
		if from.IsZero() || d.Before(from) {
			from = d
		}
		if to.IsZero() || to.Before(d) {
			to = d
		}
	}
	return from, to
}

// requestedPairs is used when the storage constraint, not the re-check,
// rejected the insert and the exact colliding row is unknown.
func requestedPairs(selections []booking.Selection) []booking.Conflict {
	out := make([]booking.Conflict, 0, booking.Units(selections))
	for _, s := range selections {
		for _, d := range s.Dates {
			out = append(out, booking.Conflict{RoomID: s.RoomID, Date: d, Slot: s.Slot, Reason: booking.ReasonOccupied})
		}
	}
	return out
}

func summarize(selections []booking.Selection) []string {
	out := make([]string, 0, len(selections))
	for _, s := range selections {
		out = append(out, selectionSummary(s))
	}
	return out
}

func selectionSummary(s booking.Selection) string {
	first, last := "-", "-"
	if s.HasDates() {
		first = s.Dates[0].String()
		last = s.Dates[len(s.Dates)-1].String()
	}
	return fmt.Sprintf("room=%d slot=%s dates=%d [%s..%s]", s.RoomID, s.Slot, len(s.Dates), first, last)
}
