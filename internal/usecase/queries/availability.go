package queries

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/metrics"
	"medoffice-booking/internal/usecase/shared"
)

var ErrRoomNotFound = errs.New("room not found")

type OccupancyReadStore interface {
	// OccupancyBetween treats an empty roomIDs as every room.
	OccupancyBetween(ctx context.Context, roomIDs []int, from, to booking.Date) ([]booking.Occupancy, error)
}

type SlotView struct {
	Date      string `json:"date"`
	RoomID    int    `json:"room_id"`
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type MonthlyDatesView struct {
	RoomID int      `json:"room_id"`
	Slot   string   `json:"slot"`
	Start  string   `json:"start"`
	Dates  []string `json:"dates"`
}

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, roomID *int, month string) (*AvailabilityView, error)
	CheckSlot(ctx context.Context, roomID int, date, slot string) (*SlotView, error)
	MonthlyDates(ctx context.Context, roomID int, start, slot string) (*MonthlyDatesView, error)
}

type availabilityQueriesImpl struct {
	occupancy OccupancyReadStore
	rooms     RoomReadStore
	cache     shared.AvailabilityCache
	metrics   *metrics.Metrics
}

func NewAvailabilityQueries(
	occupancy OccupancyReadStore,
	rooms RoomReadStore,
	cache shared.AvailabilityCache,
	m *metrics.Metrics,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		occupancy: occupancy,
		rooms:     rooms,
		cache:     cache,
		metrics:   m,
	}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, roomID *int, month string) (*AvailabilityView, error) {
	m, err := booking.ParseMonth(month)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if roomID != nil {
		if err := q.ensureRoom(ctx, *roomID); err != nil {
			return nil, err
		}
	}

	ix, err := q.monthIndex(ctx, m, roomID)
	if err != nil {
		return nil, err
	}

	entries := ix.Entries()
	items := make([]AvailabilityItem, 0, len(entries))
	for _, e := range entries {
		slots := make([]string, len(e.Slots))
		for i, s := range e.Slots {
			slots[i] = s.String()
		}
		items = append(items, AvailabilityItem{
			Date:   e.Date.String(),
			RoomID: e.RoomID,
			Slots:  slots,
			State:  string(e.State),
		})
	}

	return &AvailabilityView{
		Month:   m.String(),
		RoomID:  roomID,
		Entries: items,
	}, nil
}

func (q *availabilityQueriesImpl) CheckSlot(ctx context.Context, roomID int, date, slot string) (*SlotView, error) {
	d, err := booking.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	ts, err := booking.ParseTimeSlot(slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}

	view := &SlotView{Date: d.String(), RoomID: roomID, Slot: ts.String()}
	if d.IsWeekend() {
		return view, nil
	}

	ix, err := q.monthIndex(ctx, d.Month(), &roomID)
	if err != nil {
		return nil, err
	}
	view.Available = booking.IsAvailable(d, roomID, ts, ix)
	return view, nil
}

// MonthlyDates lists the weekdays a monthly plan starting at start would
// book, leaving out dates already taken for slot.
func (q *availabilityQueriesImpl) MonthlyDates(ctx context.Context, roomID int, start, slot string) (*MonthlyDatesView, error) {
	d, err := booking.ParseDate(start)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	ts, err := booking.ParseTimeSlot(slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}

	// a window starting late in a month can reach two months ahead
	ix := booking.NewAvailabilityIndex(nil)
	for _, m := range booking.MonthsOf(booking.MonthlyPlanDates(d, nil)) {
		part, err := q.monthRecords(ctx, m, &roomID)
		if err != nil {
			return nil, err
		}
		for _, o := range part {
			ix.Add(o)
		}
	}

	dates := booking.MonthlyPlanDates(d, booking.TakenFor(ix, roomID, ts))
	out := make([]string, len(dates))
	for i, date := range dates {
		out[i] = date.String()
	}

	return &MonthlyDatesView{
		RoomID: roomID,
		Slot:   ts.String(),
		Start:  d.String(),
		Dates:  out,
	}, nil
}

func (q *availabilityQueriesImpl) ensureRoom(ctx context.Context, roomID int) error {
	if roomID <= 0 {
		return errs.Mark(booking.ErrInvalidRoom, errs.ErrValidation)
	}
	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(ErrRoomNotFound, errs.ErrNotFound)
		}
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return nil
}

func (q *availabilityQueriesImpl) monthIndex(ctx context.Context, m booking.Month, roomID *int) (*booking.AvailabilityIndex, error) {
	records, err := q.monthRecords(ctx, m, roomID)
	if err != nil {
		return nil, err
	}
	return booking.NewAvailabilityIndex(records), nil
}

// monthRecords reads through the cache; the database stays authoritative.
func (q *availabilityQueriesImpl) monthRecords(ctx context.Context, m booking.Month, roomID *int) ([]booking.Occupancy, error) {
	if records, ok := q.cache.Get(ctx, m, roomID); ok {
		q.metrics.IncCacheLookup(true)
		return records, nil
	}
	q.metrics.IncCacheLookup(false)
	generation, cacheable := q.cache.Generation(ctx, m)

	var roomIDs []int
	if roomID != nil {
		roomIDs = []int{*roomID}
	}
	records, err := q.occupancy.OccupancyBetween(ctx, roomIDs, m.First(), m.Last())
	if err != nil {
		slog.Error("failed to load occupancy", "month", m.String(), "error", err.Error())
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	if cacheable {
		q.cache.Set(ctx, m, roomID, records, generation)
	}
	return records, nil
}
