package pricing

import (
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// ResolveDatePrice computes the nightly price for a single date.
// With no applicable rate the base price stands. If several rates cover
// the same date (a broken invariant, since writes reject overlap) the
// most recently updated rate wins, ties go to the earlier range start.
// ErrAmbiguousRates is reported only when the top candidate itself is
// tied; lower-ranked ties are shadowed by a unique winner. The verdict
// is independent of the order rates appear in the snapshot.
func ResolveDatePrice(rs RuleSet, date calendar.Date) (ResolvedPrice, error) {
	resolved := ResolvedPrice{
		Date:       date,
		BasePrice:  rs.BasePrice,
		FinalPrice: rs.BasePrice,
	}

	winner := -1
	tied := false
	for i := range rs.Rates {
		if !rs.Rates[i].Range.Contains(date) {
			continue
		}
		if winner == -1 {
			winner = i
			continue
		}
		switch precedence(rs.Rates[i], rs.Rates[winner]) {
		case 1:
			// A strictly better candidate clears any earlier tie:
			// rates tie only when equal on both keys, so beating one
			// of a tied pair beats the other as well.
			winner = i
			tied = false
		case 0:
			tied = true
		}
	}
	if tied {
		return ResolvedPrice{}, ErrAmbiguousRates
	}

	if winner >= 0 {
		rate := rs.Rates[winner]
		resolved.AppliedRate = &rate
		resolved.FinalPrice = applyRate(rs.BasePrice, rate)
	}
	return resolved, nil
}

// ResolveRangePrice sums the resolved nightly price over every date in
// [Start, End). The total is exact integer arithmetic in minor units;
// rounding to presentation currency is the caller's concern.
func ResolveRangePrice(rs RuleSet, r calendar.Range) (StayPrice, error) {
	stay := StayPrice{
		Range:  r,
		Nights: make([]ResolvedPrice, 0, r.Nights()),
	}
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		night, err := ResolveDatePrice(rs, d)
		if err != nil {
			return StayPrice{}, err
		}
		stay.Nights = append(stay.Nights, night)
		stay.Total += night.FinalPrice
	}
	return stay, nil
}

// applyRate computes the nightly price under a single rate.
func applyRate(basePrice int64, rate PeakRate) int64 {
	switch rate.Type {
	case RatePercentage:
		return basePrice + basePrice*rate.Value/100
	default: // RateFixed
		return rate.Value
	}
}

// precedence orders two rates covering the same date: 1 if a wins,
// -1 if b wins, 0 if indistinguishable. Later UpdatedAt wins; on equal
// timestamps the earlier range start wins.
func precedence(a, b PeakRate) int {
	if a.UpdatedAt.After(b.UpdatedAt) {
		return 1
	}
	if b.UpdatedAt.After(a.UpdatedAt) {
		return -1
	}
	switch {
	case a.Range.Start.Before(b.Range.Start):
		return 1
	case b.Range.Start.Before(a.Range.Start):
		return -1
	}
	return 0
}
