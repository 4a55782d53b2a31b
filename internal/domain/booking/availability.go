package booking

import "sort"

// Occupancy is the projection of a booking record the index needs.
type Occupancy struct {
	RoomID int
	Date   Date
	Slot   TimeSlot
	Status Status
}

type SlotKey struct {
	Date   Date
	RoomID int
}

type DayState string

const (
	DayPartial DayState = "partial"
	DayBooked  DayState = "booked"
)

type AvailabilityEntry struct {
	Date   Date
	RoomID int
	Slots  []TimeSlot
	State  DayState
}

// AvailabilityIndex maps (date, room) to the slots already occupied there.
// A key with no entry is fully available.
type AvailabilityIndex struct {
	occupied map[SlotKey]slotMask
}

func NewAvailabilityIndex(records []Occupancy) *AvailabilityIndex {
	ix := &AvailabilityIndex{occupied: make(map[SlotKey]slotMask, len(records))}
	for _, r := range records {
		ix.Add(r)
	}
	return ix
}

// Add ignores records whose status does not hold the slot.
func (ix *AvailabilityIndex) Add(o Occupancy) {
	if o.Status != "" && !o.Status.IsActive() {
		return
	}
	bit := o.Slot.mask()
	if bit == 0 {
		return
	}
	key := SlotKey{Date: o.Date, RoomID: o.RoomID}
	ix.occupied[key] |= bit
}

func (ix *AvailabilityIndex) Occupied(date Date, roomID int) []TimeSlot {
	return ix.maskOf(date, roomID).slots()
}

func (ix *AvailabilityIndex) Len() int {
	return len(ix.occupied)
}

func (ix *AvailabilityIndex) Clone() *AvailabilityIndex {
	cp := &AvailabilityIndex{occupied: make(map[SlotKey]slotMask, len(ix.occupied))}
	for k, v := range ix.occupied {
		cp.occupied[k] = v
	}
	return cp
}

// Entries flattens the index sorted by date, then room.
func (ix *AvailabilityIndex) Entries() []AvailabilityEntry {
	out := make([]AvailabilityEntry, 0, len(ix.occupied))
	for key, mask := range ix.occupied {
		out = append(out, AvailabilityEntry{
			Date:   key.Date,
			RoomID: key.RoomID,
			Slots:  mask.slots(),
			State:  dayState(mask),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].RoomID < out[j].RoomID
	})
	return out
}

func (ix *AvailabilityIndex) maskOf(date Date, roomID int) slotMask {
	if ix == nil {
		return 0
	}
	return ix.occupied[SlotKey{Date: date, RoomID: roomID}]
}

// Morning plus evening is reported as booked for display; the slots stay
// independent for conflict checks.
func dayState(m slotMask) DayState {
	if m.has(SlotFull) || (m.has(SlotMorning) && m.has(SlotEvening)) {
		return DayBooked
	}
	return DayPartial
}
