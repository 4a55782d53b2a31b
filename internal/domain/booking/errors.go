package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTimeSlot    = errors.New("invalid time slot")
	ErrInvalidBookingType = errors.New("invalid booking type")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidRoom        = errors.New("invalid room id")
	ErrNoDates            = errors.New("no dates selected")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidPricing     = errors.New("invalid pricing table")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrSlotConflict       = errors.New("slot no longer available")
	ErrInvalidUser        = errors.New("invalid user id")
	ErrInvalidPayment     = errors.New("invalid payment details")
)

type ConflictReason string

const (
	ReasonOccupied ConflictReason = "occupied"
	ReasonWeekend  ConflictReason = "weekend"
	// ReasonOverlap marks two selections in the same request that collide.
	ReasonOverlap ConflictReason = "overlap"
)

type Conflict struct {
	RoomID int
	Date   Date
	Slot   TimeSlot
	Reason ConflictReason
}

// ConflictError lists every (room, date) that could not be booked.
type ConflictError struct {
	Conflicts []Conflict
}

func NewConflictError(conflicts []Conflict) *ConflictError {
	return &ConflictError{Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("room %d on %s (%s)", c.RoomID, c.Date, c.Slot))
	}
	return ErrSlotConflict.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
