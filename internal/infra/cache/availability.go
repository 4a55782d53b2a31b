package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	availabilityPrefix = "availability"
	generationTTL      = 24 * time.Hour
)

var errGenerationMoved = errs.New("availability generation moved")

type occupancyRecord struct {
	RoomID int    `json:"room_id"`
	Date   string `json:"date"`
	Slot   string `json:"slot"`
	Status string `json:"status"`
}

// AvailabilityCache is a read-through cache of month occupancy. Each month
// carries a generation counter bumped by Invalidate; Set only stores a
// snapshot read under the current generation. A nil client turns every call
// into a miss or a no-op.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, month booking.Month, roomID *int) ([]booking.Occupancy, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(month, roomID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "month", month.String(), "error", err.Error())
		}
		return nil, false
	}

	var records []occupancyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Warn("availability cache entry is corrupt", "month", month.String(), "error", err.Error())
		return nil, false
	}

	out := make([]booking.Occupancy, 0, len(records))
	for _, r := range records {
		o, err := r.toDomain()
		if err != nil {
			slog.Warn("availability cache entry is corrupt", "month", month.String(), "error", err.Error())
			return nil, false
		}
		out = append(out, o)
	}
	return out, true
}

// Generation returns the month's counter to pass to Set. ok is false when the
// backend cannot tell, and the caller should not cache.
func (c *AvailabilityCache) Generation(ctx context.Context, month booking.Month) (int64, bool) {
	if c.client == nil {
		return 0, false
	}
	gen, err := c.client.Get(ctx, generationKey(month)).Int64()
	switch {
	case err == redis.Nil:
		return 0, true
	case err != nil:
		slog.Warn("availability generation read failed", "month", month.String(), "error", err.Error())
		return 0, false
	}
	return gen, true
}

// Set stores records unless the month was invalidated after generation was read.
func (c *AvailabilityCache) Set(ctx context.Context, month booking.Month, roomID *int, records []booking.Occupancy, generation int64) {
	if c.client == nil {
		return
	}

	payload := make([]occupancyRecord, 0, len(records))
	for _, o := range records {
		payload = append(payload, occupancyRecord{
			RoomID: o.RoomID,
			Date:   o.Date.String(),
			Slot:   o.Slot.String(),
			Status: o.Status.String(),
		})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	genKey := generationKey(month)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return errGenerationMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, availabilityKey(month, roomID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errs.Is(err, errGenerationMoved), errs.Is(err, redis.TxFailedErr):
		slog.Debug("skipping stale availability snapshot", "month", month.String(), "generation", generation)
	default:
		slog.Warn("availability cache write failed", "month", month.String(), "error", err.Error())
	}
}

// Invalidate drops the all-rooms entry and each listed room's entry for every
// month, and bumps each month's generation so in-flight reads are not stored.
func (c *AvailabilityCache) Invalidate(ctx context.Context, months []booking.Month, roomIDs []int) {
	if c.client == nil || len(months) == 0 {
		return
	}

	keys := make([]string, 0, len(months)*(len(roomIDs)+1))
	for _, m := range months {
		keys = append(keys, availabilityKey(m, nil))
		for _, id := range roomIDs {
			room := id
			keys = append(keys, availabilityKey(m, &room))
		}
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range months {
			pipe.Incr(ctx, generationKey(m))
			pipe.Expire(ctx, generationKey(m), generationTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		slog.Warn("availability cache invalidation failed", "keys", len(keys), "error", err.Error())
	}
}

func availabilityKey(month booking.Month, roomID *int) string {
	room := "all"
	if roomID != nil {
		room = strconv.Itoa(*roomID)
	}
	return availabilityPrefix + ":" + month.String() + ":" + room
}

func generationKey(month booking.Month) string {
	return availabilityPrefix + ":" + month.String() + ":gen"
}

func (r occupancyRecord) toDomain() (booking.Occupancy, error) {
	d, err := booking.ParseDate(r.Date)
	if err != nil {
		return booking.Occupancy{}, err
	}
	slot, err := booking.ParseTimeSlot(r.Slot)
	if err != nil {
		return booking.Occupancy{}, err
	}
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return booking.Occupancy{}, err
	}
	return booking.Occupancy{RoomID: r.RoomID, Date: d, Slot: slot, Status: status}, nil
}
