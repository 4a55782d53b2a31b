//go:build unit

package booking_test

import (
	"testing"

	"medoffice-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestAvailabilityIndex(t *testing.T) {
	mon := mustDate(t, "2024-06-10")
	tue := mustDate(t, "2024-06-11")

	ix := booking.NewAvailabilityIndex([]booking.Occupancy{
		{RoomID: 2, Date: tue, Slot: booking.SlotMorning, Status: booking.StatusConfirmed},
		{RoomID: 1, Date: tue, Slot: booking.SlotFull, Status: booking.StatusPending},
		{RoomID: 1, Date: mon, Slot: booking.SlotEvening, Status: booking.StatusConfirmed},
		{RoomID: 1, Date: mon, Slot: booking.SlotMorning, Status: booking.StatusConfirmed},
		{RoomID: 3, Date: mon, Slot: booking.SlotFull, Status: booking.StatusCancelled},
	})

	t.Run("日付・部屋順に並ぶ", func(t *testing.T) {
		want := []booking.AvailabilityEntry{
			{Date: mon, RoomID: 1, Slots: []booking.TimeSlot{booking.SlotMorning, booking.SlotEvening}, State: booking.DayBooked},
			{Date: tue, RoomID: 1, Slots: []booking.TimeSlot{booking.SlotFull}, State: booking.DayBooked},
			{Date: tue, RoomID: 2, Slots: []booking.TimeSlot{booking.SlotMorning}, State: booking.DayPartial},
		}
		if diff := cmp.Diff(want, ix.Entries(), cmp.AllowUnexported(booking.Date{})); diff != "" {
			t.Errorf("Entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("午前と夜で埋まっても終日は個別に判定", func(t *testing.T) {
		assert.ElementsMatch(t, []booking.TimeSlot{booking.SlotMorning, booking.SlotEvening}, ix.Occupied(mon, 1))
		assert.False(t, booking.IsAvailable(mon, 1, booking.SlotFull, ix))
	})

	t.Run("キャンセル済みは含まない", func(t *testing.T) {
		assert.Empty(t, ix.Occupied(mon, 3))
		assert.Equal(t, 3, ix.Len())
	})

	t.Run("Cloneは独立", func(t *testing.T) {
		cp := ix.Clone()
		cp.Add(booking.Occupancy{RoomID: 9, Date: mon, Slot: booking.SlotFull})
		assert.Equal(t, 4, cp.Len())
		assert.Equal(t, 3, ix.Len())
	})

	t.Run("空インデックス", func(t *testing.T) {
		empty := booking.NewAvailabilityIndex(nil)
		if diff := cmp.Diff([]booking.AvailabilityEntry{}, empty.Entries(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Entries mismatch (-want +got):\n%s", diff)
		}
	})
}
