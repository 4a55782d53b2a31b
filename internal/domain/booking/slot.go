package booking

import "strings"

type TimeSlot string

const (
	SlotFull    TimeSlot = "full"
	SlotMorning TimeSlot = "morning"
	SlotEvening TimeSlot = "evening"
)

// AllSlots is ordered the way occupied sets are reported.
var AllSlots = []TimeSlot{SlotFull, SlotMorning, SlotEvening}

func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(strings.ToLower(strings.TrimSpace(s)))
	if !slot.IsValid() {
		return "", ErrInvalidTimeSlot
	}
	return slot, nil
}

func (s TimeSlot) String() string {
	return string(s)
}

func (s TimeSlot) IsValid() bool {
	switch s {
	case SlotFull, SlotMorning, SlotEvening:
		return true
	default:
		return false
	}
}

func (s TimeSlot) IsHalfDay() bool {
	return s == SlotMorning || s == SlotEvening
}

type slotMask uint8

const (
	maskFull slotMask = 1 << iota
	maskMorning
	maskEvening
)

func (s TimeSlot) mask() slotMask {
	switch s {
	case SlotFull:
		return maskFull
	case SlotMorning:
		return maskMorning
	case SlotEvening:
		return maskEvening
	default:
		return 0
	}
}

func (m slotMask) has(s TimeSlot) bool {
	bit := s.mask()
	return bit != 0 && m&bit != 0
}

func (m slotMask) slots() []TimeSlot {
	out := make([]TimeSlot, 0, len(AllSlots))
	for _, s := range AllSlots {
		if m.has(s) {
			out = append(out, s)
		}
	}
	return out
}
