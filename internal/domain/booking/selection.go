package booking

import (
	"fmt"
	"sort"
)

// Selection is one room, one slot and the dates it is wanted for.
type Selection struct {
	RoomID int
	Slot   TimeSlot
	Dates  []Date
}

// NewSelection validates raw input; dates are de-duplicated and sorted.
func NewSelection(roomID int, slot string, dates []string) (Selection, error) {
	if roomID <= 0 {
		return Selection{}, ErrInvalidRoom
	}
	ts, err := ParseTimeSlot(slot)
	if err != nil {
		return Selection{}, err
	}
	parsed := make([]Date, 0, len(dates))
	for _, raw := range dates {
		d, err := ParseDate(raw)
		if err != nil {
			return Selection{}, err
		}
		parsed = append(parsed, d)
	}
	return Selection{RoomID: roomID, Slot: ts, Dates: normalizeDates(parsed)}, nil
}

func (s Selection) HasDates() bool {
	return len(s.Dates) > 0
}

// ValidateSelections requires at least one selection that carries dates.
func ValidateSelections(selections []Selection) error {
	hasDates := false
	for i, s := range selections {
		if s.RoomID <= 0 {
			return fmt.Errorf("selection %d: %w", i, ErrInvalidRoom)
		}
		if !s.Slot.IsValid() {
			return fmt.Errorf("selection %d: %w", i, ErrInvalidTimeSlot)
		}
		if s.HasDates() {
			hasDates = true
		}
	}
	if !hasDates {
		return ErrNoDates
	}
	return nil
}

// Units counts the (room, date, slot) rows the selections would create.
func Units(selections []Selection) int {
	n := 0
	for _, s := range selections {
		n += len(s.Dates)
	}
	return n
}

func AllDates(selections []Selection) []Date {
	out := make([]Date, 0, Units(selections))
	for _, s := range selections {
		out = append(out, s.Dates...)
	}
	return out
}

func normalizeDates(dates []Date) []Date {
	seen := make(map[Date]struct{}, len(dates))
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
