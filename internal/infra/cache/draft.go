package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftPrefix = "draft"

type draftPayload struct {
	BookingType string             `json:"booking_type"`
	Selections  []selectionPayload `json:"selections"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type selectionPayload struct {
	RoomID   int      `json:"room_id"`
	TimeSlot string   `json:"time_slot"`
	Dates    []string `json:"dates"`
}

func encodeDraft(d *booking.Draft) ([]byte, error) {
	p := draftPayload{
		BookingType: d.BookingType.String(),
		Selections:  make([]selectionPayload, 0, len(d.Selections)),
		UpdatedAt:   d.UpdatedAt,
	}
	for _, s := range d.Selections {
		dates := make([]string, 0, len(s.Dates))
		for _, day := range s.Dates {
			dates = append(dates, day.String())
		}
		p.Selections = append(p.Selections, selectionPayload{RoomID: s.RoomID, TimeSlot: s.Slot.String(), Dates: dates})
	}
	return json.Marshal(p)
}

func decodeDraft(userID uuid.UUID, raw []byte) (*booking.Draft, error) {
	var p draftPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errs.Wrap(err, "decode draft")
	}
	bookingType, err := booking.ParseBookingType(p.BookingType)
	if err != nil {
		return nil, err
	}
	selections := make([]booking.Selection, 0, len(p.Selections))
	for _, s := range p.Selections {
		sel, err := booking.NewSelection(s.RoomID, s.TimeSlot, s.Dates)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	return booking.NewDraft(userID, bookingType, selections, p.UpdatedAt)
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, d *booking.Draft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, draftKey(d.UserID), raw, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "save draft")
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, userID uuid.UUID) (*booking.Draft, error) {
	raw, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, shared.ErrDraftNotFound
		}
		return nil, errs.Wrap(err, "load draft")
	}
	return decodeDraft(userID, raw)
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return errs.Wrap(err, "delete draft")
	}
	return nil
}

func draftKey(userID uuid.UUID) string {
	return draftPrefix + ":" + userID.String()
}

// MemoryDraftStore keeps drafts in process; used when Redis is not configured.
type MemoryDraftStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]memoryDraft
	ttl   time.Duration
	clock clock.Clock
}

type memoryDraft struct {
	raw       []byte
	expiresAt time.Time
}

func NewMemoryDraftStore(clk clock.Clock, ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		items: make(map[uuid.UUID]memoryDraft),
		ttl:   ttl,
		clock: clk,
	}
}

func (s *MemoryDraftStore) Save(_ context.Context, d *booking.Draft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[d.UserID] = memoryDraft{raw: raw, expiresAt: s.clock.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, userID uuid.UUID) (*booking.Draft, error) {
	s.mu.Lock()
	item, ok := s.items[userID]
	if ok && !s.clock.Now().Before(item.expiresAt) {
		delete(s.items, userID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, shared.ErrDraftNotFound
	}
	return decodeDraft(userID, item.raw)
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}
