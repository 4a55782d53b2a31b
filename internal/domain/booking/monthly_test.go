//go:build unit

package booking_test

import (
	"testing"

	"medoffice-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPlanDates(t *testing.T) {
	start := mustDate(t, "2024-06-10")

	t.Run("1ヶ月分の平日", func(t *testing.T) {
		dates := booking.MonthlyPlanDates(start, nil)

		require.Len(t, dates, 22)
		assert.Equal(t, "2024-06-10", dates[0].String())
		assert.Equal(t, "2024-07-09", dates[len(dates)-1].String())
		for _, d := range dates {
			assert.False(t, d.IsWeekend(), d.String())
		}
	})

	t.Run("予約済みの日は除外", func(t *testing.T) {
		ix := booking.NewAvailabilityIndex([]booking.Occupancy{
			{RoomID: 1, Date: mustDate(t, "2024-06-11"), Slot: booking.SlotMorning, Status: booking.StatusConfirmed},
			{RoomID: 1, Date: mustDate(t, "2024-06-12"), Slot: booking.SlotEvening, Status: booking.StatusConfirmed},
			{RoomID: 1, Date: mustDate(t, "2024-06-13"), Slot: booking.SlotFull, Status: booking.StatusPending},
		})

		dates := booking.MonthlyPlanDates(start, booking.TakenFor(ix, 1, booking.SlotMorning))

		require.Len(t, dates, 20)
		for _, d := range dates {
			assert.NotEqual(t, "2024-06-11", d.String())
			assert.NotEqual(t, "2024-06-13", d.String())
		}
	})

	t.Run("月末開始は3ヶ月にまたがる", func(t *testing.T) {
		dates := booking.MonthlyPlanDates(mustDate(t, "2024-01-31"), nil)

		assert.Equal(t, "2024-03-01", dates[len(dates)-1].String())
		months := booking.MonthsOf(dates)
		require.Len(t, months, 3)
		assert.Equal(t, "2024-03", months[2].String())
	})

	t.Run("週末開始は翌月曜から", func(t *testing.T) {
		dates := booking.MonthlyPlanDates(mustDate(t, "2024-06-15"), nil)
		require.NotEmpty(t, dates)
		assert.Equal(t, "2024-06-17", dates[0].String())
	})
}

func TestDate(t *testing.T) {
	t.Run("不正な日付NG", func(t *testing.T) {
		_, err := booking.ParseDate("2024-02-30")
		require.ErrorIs(t, err, booking.ErrInvalidDate)
	})

	t.Run("月の範囲", func(t *testing.T) {
		m, err := booking.ParseMonth("2024-02")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-01", m.First().String())
		assert.Equal(t, "2024-02-29", m.Last().String())
		assert.True(t, m.Contains(mustDate(t, "2024-02-29")))
		assert.False(t, m.Contains(mustDate(t, "2024-03-01")))
	})

	t.Run("月をまたぐ日付", func(t *testing.T) {
		months := booking.MonthsOf([]booking.Date{
			mustDate(t, "2024-06-28"), mustDate(t, "2024-07-01"), mustDate(t, "2024-06-10"),
		})
		require.Len(t, months, 2)
		assert.Equal(t, "2024-06", months[0].String())
		assert.Equal(t, "2024-07", months[1].String())
	})

	t.Run("選択の日付は重複除去・昇順", func(t *testing.T) {
		sel := mustSelection(t, 1, "FULL", "2024-06-12", "2024-06-10", "2024-06-12")
		require.Len(t, sel.Dates, 2)
		assert.Equal(t, "2024-06-10", sel.Dates[0].String())
		assert.Equal(t, booking.SlotFull, sel.Slot)
	})
}
