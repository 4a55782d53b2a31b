package booking

import (
	"time"

	"github.com/google/uuid"
)

// Draft is the in-progress selection a user carries between booking steps.
// It is only a convenience; commit re-validates everything it contains.
type Draft struct {
	UserID      uuid.UUID
	BookingType BookingType
	Selections  []Selection
	UpdatedAt   time.Time
}

func NewDraft(userID uuid.UUID, bookingType BookingType, selections []Selection, now time.Time) (*Draft, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	if !bookingType.IsValid() {
		return nil, ErrInvalidBookingType
	}
	for _, s := range selections {
		if s.RoomID <= 0 {
			return nil, ErrInvalidRoom
		}
		if !s.Slot.IsValid() {
			return nil, ErrInvalidTimeSlot
		}
	}
	return &Draft{
		UserID:      userID,
		BookingType: bookingType,
		Selections:  selections,
		UpdatedAt:   now,
	}, nil
}
