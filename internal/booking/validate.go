package booking

import (
	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
)

// Validate produces the single booking-feasibility verdict for a stay.
// Order matters: an invalid range fails before any availability or price
// work, blocked dates fail before pricing, and only a fully open range
// is priced. The function is pure over the supplied snapshots.
func Validate(rs pricing.RuleSet, idx availability.Index, r calendar.Range) (*Quote, error) {
	if !r.Start.Before(r.End) {
		return nil, ErrInvalidRange
	}

	avail := availability.ResolveRange(idx, r)
	if !avail.AllAvailable {
		return nil, &DatesUnavailableError{BlockedDates: avail.BlockedDates}
	}

	stay, err := pricing.ResolveRangePrice(rs, r)
	if err != nil {
		return nil, err
	}

	return &Quote{
		UnitID: rs.UnitID,
		Range:  r,
		Nights: stay.Nights,
		Total:  stay.Total,
	}, nil
}
