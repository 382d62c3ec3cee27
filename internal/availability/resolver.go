package availability

import (
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// ResolveDate reports whether a single date is open for booking.
// Dates without an override default to available.
func ResolveDate(idx Index, date calendar.Date) bool {
	if open, ok := idx[date]; ok {
		return open
	}
	return true
}

// ResolveRange checks every night in [Start, End). The checkout date is
// excluded since the guest departs that morning. Every blocked date is
// collected, not just the first, so a guest can fix the whole range in
// one correction.
func ResolveRange(idx Index, r calendar.Range) RangeAvailability {
	result := RangeAvailability{Range: r}
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		if !ResolveDate(idx, d) {
			result.BlockedDates = append(result.BlockedDates, d)
		}
	}
	result.AllAvailable = len(result.BlockedDates) == 0
	return result
}
