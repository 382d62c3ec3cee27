package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
)

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	require.NoError(t, err)
	return d
}

func mustRange(t *testing.T, start, end string) calendar.Range {
	t.Helper()
	r, err := calendar.ParseRange(start, end)
	require.NoError(t, err)
	return r
}

func TestValidate(t *testing.T) {
	rs := pricing.RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []pricing.PeakRate{
		{ID: "r1", Range: mustRange(t, "2024-02-03", "2024-02-05"), Type: pricing.RateFixed, Value: 750000},
	}}

	t.Run("Available range returns a full quote", func(t *testing.T) {
		quote, err := Validate(rs, availability.Index{}, mustRange(t, "2024-02-01", "2024-02-05"))
		require.NoError(t, err)

		assert.Equal(t, "u1", quote.UnitID)
		require.Len(t, quote.Nights, 4)
		// 1st and 2nd at base, 3rd and 4th at the peak rate.
		assert.Equal(t, int64(500000+500000+750000+750000), quote.Total)
	})

	t.Run("Blocked dates reject with the complete list", func(t *testing.T) {
		idx := availability.Index{
			mustDate(t, "2024-02-02"): false,
			mustDate(t, "2024-02-04"): false,
		}

		_, err := Validate(rs, idx, mustRange(t, "2024-02-01", "2024-02-05"))

		var unavailable *DatesUnavailableError
		require.ErrorAs(t, err, &unavailable)
		require.Len(t, unavailable.BlockedDates, 2)
		assert.Equal(t, "2024-02-02", unavailable.BlockedDates[0].String())
		assert.Equal(t, "2024-02-04", unavailable.BlockedDates[1].String())
	})

	t.Run("Invalid range fails before availability and pricing", func(t *testing.T) {
		d := mustDate(t, "2024-02-01")

		// Ambiguous rules and blocked dates below would both trip if
		// reached; the range check must short-circuit first.
		sameRange := mustRange(t, "2024-01-01", "2024-12-31")
		broken := pricing.RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []pricing.PeakRate{
			{ID: "a", Range: sameRange, Type: pricing.RateFixed, Value: 1},
			{ID: "b", Range: sameRange, Type: pricing.RateFixed, Value: 2},
		}}
		blocked := availability.Index{d: false}

		_, err := Validate(broken, blocked, calendar.Range{Start: d, End: d})
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, err = Validate(broken, blocked, calendar.Range{Start: d.AddDays(3), End: d})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("Ambiguous rate state surfaces instead of a silent pick", func(t *testing.T) {
		sameRange := mustRange(t, "2024-02-01", "2024-02-10")
		broken := pricing.RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []pricing.PeakRate{
			{ID: "a", Range: sameRange, Type: pricing.RateFixed, Value: 600000},
			{ID: "b", Range: sameRange, Type: pricing.RateFixed, Value: 900000},
		}}

		_, err := Validate(broken, availability.Index{}, mustRange(t, "2024-02-01", "2024-02-03"))
		assert.ErrorIs(t, err, pricing.ErrAmbiguousRates)
	})
}
