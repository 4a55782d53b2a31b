package booking

// IsAvailable decides whether slot can still be booked for (date, room).
// Weekends are never bookable; a full-day booking blocks everything; a
// full-day request needs both halves free; halves only block themselves.
func IsAvailable(date Date, roomID int, requested TimeSlot, ix *AvailabilityIndex) bool {
	return conflictReason(date, roomID, requested, ix) == ""
}

func conflictReason(date Date, roomID int, requested TimeSlot, ix *AvailabilityIndex) ConflictReason {
	if date.IsWeekend() {
		return ReasonWeekend
	}
	m := ix.maskOf(date, roomID)
	if m.has(SlotFull) {
		return ReasonOccupied
	}
	switch requested {
	case SlotFull:
		if m.has(SlotMorning) || m.has(SlotEvening) {
			return ReasonOccupied
		}
	case SlotMorning, SlotEvening:
		if m.has(requested) {
			return ReasonOccupied
		}
	default:
		return ReasonOccupied
	}
	return ""
}

// FindConflicts checks every (room, date, slot) of the selections against
// ix, and against the earlier selections of the same request. ix itself is
// left untouched.
func FindConflicts(selections []Selection, ix *AvailabilityIndex) []Conflict {
	working := NewAvailabilityIndex(nil)
	if ix != nil {
		working = ix.Clone()
	}

	var conflicts []Conflict
	for _, sel := range selections {
		for _, d := range sel.Dates {
			reason := conflictReason(d, sel.RoomID, sel.Slot, working)
			if reason == "" {
				working.Add(Occupancy{RoomID: sel.RoomID, Date: d, Slot: sel.Slot})
				continue
			}
			if reason == ReasonOccupied && !ix.blocks(d, sel.RoomID, sel.Slot) {
				reason = ReasonOverlap
			}
			conflicts = append(conflicts, Conflict{RoomID: sel.RoomID, Date: d, Slot: sel.Slot, Reason: reason})
		}
	}
	return conflicts
}

func (ix *AvailabilityIndex) blocks(date Date, roomID int, slot TimeSlot) bool {
	return conflictReason(date, roomID, slot, ix) != ""
}
