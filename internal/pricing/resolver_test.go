package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

func mustRange(t *testing.T, start, end string) calendar.Range {
	t.Helper()
	r, err := calendar.ParseRange(start, end)
	require.NoError(t, err)
	return r
}

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	require.NoError(t, err)
	return d
}

func TestResolveDatePrice(t *testing.T) {
	christmas := mustRange(t, "2024-12-24", "2024-12-26")

	tests := []struct {
		name      string
		ruleSet   RuleSet
		date      string
		wantPrice int64
		wantRate  string // expected applied rate ID, empty for base price
	}{
		{
			name:      "No rates, base price stands",
			ruleSet:   RuleSet{UnitID: "u1", BasePrice: 500000},
			date:      "2024-12-24",
			wantPrice: 500000,
		},
		{
			name: "Fixed rate replaces base price on first night",
			ruleSet: RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
				{ID: "r1", Range: christmas, Type: RateFixed, Value: 750000},
			}},
			date:      "2024-12-24",
			wantPrice: 750000,
			wantRate:  "r1",
		},
		{
			name: "Fixed rate applies on last covered night",
			ruleSet: RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
				{ID: "r1", Range: christmas, Type: RateFixed, Value: 750000},
			}},
			date:      "2024-12-25",
			wantPrice: 750000,
			wantRate:  "r1",
		},
		{
			name: "End date is exclusive, base price returns",
			ruleSet: RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
				{ID: "r1", Range: christmas, Type: RateFixed, Value: 750000},
			}},
			date:      "2024-12-26",
			wantPrice: 500000,
		},
		{
			name: "Percentage markup over base price",
			ruleSet: RuleSet{UnitID: "u1", BasePrice: 1000000, Rates: []PeakRate{
				{ID: "r1", Range: christmas, Type: RatePercentage, Value: 25},
			}},
			date:      "2024-12-25",
			wantPrice: 1250000,
			wantRate:  "r1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDatePrice(tt.ruleSet, mustDate(t, tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, got.FinalPrice)
			assert.Equal(t, tt.ruleSet.BasePrice, got.BasePrice)
			if tt.wantRate == "" {
				assert.Nil(t, got.AppliedRate)
			} else {
				require.NotNil(t, got.AppliedRate)
				assert.Equal(t, tt.wantRate, got.AppliedRate.ID)
			}
		})
	}
}

func TestResolveDatePriceDeterministic(t *testing.T) {
	rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
		{ID: "r1", Range: mustRange(t, "2024-12-20", "2024-12-31"), Type: RatePercentage, Value: 50},
	}}
	date := mustDate(t, "2024-12-24")

	first, err := ResolveDatePrice(rs, date)
	require.NoError(t, err)
	second, err := ResolveDatePrice(rs, date)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveDatePriceOverlapTieBreak(t *testing.T) {
	date := mustDate(t, "2024-12-25")
	older := time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, time.November, 5, 10, 0, 0, 0, time.UTC)

	t.Run("Most recently updated rate wins", func(t *testing.T) {
		rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
			{ID: "old", Range: mustRange(t, "2024-12-20", "2024-12-28"), Type: RateFixed, Value: 600000, UpdatedAt: older},
			{ID: "new", Range: mustRange(t, "2024-12-24", "2024-12-26"), Type: RateFixed, Value: 900000, UpdatedAt: newer},
		}}

		got, err := ResolveDatePrice(rs, date)
		require.NoError(t, err)
		require.NotNil(t, got.AppliedRate)
		assert.Equal(t, "new", got.AppliedRate.ID)
		assert.Equal(t, int64(900000), got.FinalPrice)
	})

	t.Run("Equal timestamps, earlier start wins", func(t *testing.T) {
		rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
			{ID: "late-start", Range: mustRange(t, "2024-12-24", "2024-12-26"), Type: RateFixed, Value: 900000, UpdatedAt: older},
			{ID: "early-start", Range: mustRange(t, "2024-12-20", "2024-12-28"), Type: RateFixed, Value: 600000, UpdatedAt: older},
		}}

		got, err := ResolveDatePrice(rs, date)
		require.NoError(t, err)
		require.NotNil(t, got.AppliedRate)
		assert.Equal(t, "early-start", got.AppliedRate.ID)
	})

	t.Run("Full tie is ambiguous, not silently resolved", func(t *testing.T) {
		sameRange := mustRange(t, "2024-12-20", "2024-12-28")
		rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
			{ID: "a", Range: sameRange, Type: RateFixed, Value: 600000, UpdatedAt: older},
			{ID: "b", Range: sameRange, Type: RateFixed, Value: 900000, UpdatedAt: older},
		}}

		_, err := ResolveDatePrice(rs, date)
		assert.ErrorIs(t, err, ErrAmbiguousRates)
	})

	t.Run("Newer rate shadows a tied pair in any order", func(t *testing.T) {
		sameRange := mustRange(t, "2024-12-20", "2024-12-28")
		tiedA := PeakRate{ID: "a", Range: sameRange, Type: RateFixed, Value: 600000, UpdatedAt: older}
		tiedB := PeakRate{ID: "b", Range: sameRange, Type: RateFixed, Value: 700000, UpdatedAt: older}
		winner := PeakRate{ID: "c", Range: mustRange(t, "2024-12-24", "2024-12-26"), Type: RateFixed, Value: 900000, UpdatedAt: newer}

		orderings := [][]PeakRate{
			{tiedA, tiedB, winner},
			{winner, tiedA, tiedB},
			{tiedA, winner, tiedB},
		}
		for _, rates := range orderings {
			rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: rates}
			got, err := ResolveDatePrice(rs, date)
			require.NoError(t, err)
			require.NotNil(t, got.AppliedRate)
			assert.Equal(t, "c", got.AppliedRate.ID)
			assert.Equal(t, int64(900000), got.FinalPrice)
		}
	})
}

func TestResolveRangePrice(t *testing.T) {
	rs := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
		{ID: "r1", Range: mustRange(t, "2024-12-24", "2024-12-26"), Type: RateFixed, Value: 750000},
	}}
	stay := mustRange(t, "2024-12-23", "2024-12-27")

	got, err := ResolveRangePrice(rs, stay)
	require.NoError(t, err)

	// 23rd base, 24th and 25th peak, 26th base (checkout 27th not priced).
	require.Len(t, got.Nights, 4)
	assert.Equal(t, int64(500000), got.Nights[0].FinalPrice)
	assert.Equal(t, int64(750000), got.Nights[1].FinalPrice)
	assert.Equal(t, int64(750000), got.Nights[2].FinalPrice)
	assert.Equal(t, int64(500000), got.Nights[3].FinalPrice)

	// Total equals the sum of per-night resolutions.
	var sum int64
	for _, n := range got.Nights {
		sum += n.FinalPrice
	}
	assert.Equal(t, sum, got.Total)
	assert.Equal(t, int64(2500000), got.Total)
}
