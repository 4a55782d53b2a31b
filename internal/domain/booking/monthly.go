package booking

// MonthlyPlanDates expands a monthly plan starting at start: every weekday
// from start up to, but not including, the same day one month later.
// Dates for which taken reports true are skipped.
func MonthlyPlanDates(start Date, taken func(Date) bool) []Date {
	end := DateOf(start.Time().AddDate(0, 1, 0))
	out := make([]Date, 0, 23)
	for d := start; d.Before(end); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		if taken != nil && taken(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// TakenFor adapts an index to MonthlyPlanDates for one room and slot.
func TakenFor(ix *AvailabilityIndex, roomID int, slot TimeSlot) func(Date) bool {
	return func(d Date) bool {
		return !IsAvailable(d, roomID, slot, ix)
	}
}
