package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRate(t *testing.T) {
	base := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
		{ID: "r1", UnitID: "u1", Range: mustRange(t, "2024-01-10", "2024-01-20"), Type: RateFixed, Value: 800000},
	}}

	t.Run("Partial overlap rejected", func(t *testing.T) {
		_, err := CreateRate(base, PeakRate{
			ID: "r2", UnitID: "u1",
			Range: mustRange(t, "2024-01-15", "2024-01-25"),
			Type:  RateFixed, Value: 900000,
		})

		var overlapErr *OverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Equal(t, "r1", overlapErr.Conflict.ID)
	})

	t.Run("Touching range accepted, end is exclusive", func(t *testing.T) {
		next, err := CreateRate(base, PeakRate{
			ID: "r2", UnitID: "u1",
			Range: mustRange(t, "2024-01-20", "2024-01-25"),
			Type:  RateFixed, Value: 900000,
		})
		require.NoError(t, err)
		assert.Len(t, next.Rates, 2)

		// Original snapshot untouched.
		assert.Len(t, base.Rates, 1)
	})

	t.Run("Non-positive value rejected", func(t *testing.T) {
		_, err := CreateRate(base, PeakRate{
			ID: "r2", Range: mustRange(t, "2024-03-01", "2024-03-05"),
			Type: RateFixed, Value: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("Unknown rate type rejected", func(t *testing.T) {
		_, err := CreateRate(base, PeakRate{
			ID: "r2", Range: mustRange(t, "2024-03-01", "2024-03-05"),
			Type: RateType("weekend"), Value: 10,
		})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("Rates kept ordered by start date", func(t *testing.T) {
		next, err := CreateRate(base, PeakRate{
			ID: "r0", Range: mustRange(t, "2024-01-01", "2024-01-05"),
			Type: RatePercentage, Value: 15,
		})
		require.NoError(t, err)
		require.Len(t, next.Rates, 2)
		assert.Equal(t, "r0", next.Rates[0].ID)
		assert.Equal(t, "r1", next.Rates[1].ID)
	})
}

func TestUpdateRate(t *testing.T) {
	base := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
		{ID: "r1", Range: mustRange(t, "2024-01-10", "2024-01-20"), Type: RateFixed, Value: 800000},
		{ID: "r2", Range: mustRange(t, "2024-02-01", "2024-02-10"), Type: RatePercentage, Value: 20},
	}}

	t.Run("Patch applies", func(t *testing.T) {
		newValue := int64(850000)
		next, err := UpdateRate(base, "r1", RatePatch{Value: &newValue})
		require.NoError(t, err)

		var got *PeakRate
		for i := range next.Rates {
			if next.Rates[i].ID == "r1" {
				got = &next.Rates[i]
			}
		}
		require.NotNil(t, got)
		assert.Equal(t, newValue, got.Value)

		// Original snapshot untouched.
		assert.Equal(t, int64(800000), base.Rates[0].Value)
	})

	t.Run("Overlap checked against other rates only", func(t *testing.T) {
		// Extending r1 inside its own old window is fine.
		wider := mustRange(t, "2024-01-08", "2024-01-22")
		_, err := UpdateRate(base, "r1", RatePatch{Range: &wider})
		require.NoError(t, err)

		// Extending r1 into r2's window is not.
		intoR2 := mustRange(t, "2024-01-10", "2024-02-05")
		_, err = UpdateRate(base, "r1", RatePatch{Range: &intoR2})
		var overlapErr *OverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Equal(t, "r2", overlapErr.Conflict.ID)
	})

	t.Run("Unknown rate id", func(t *testing.T) {
		_, err := UpdateRate(base, "missing", RatePatch{})
		assert.ErrorIs(t, err, ErrRateNotFound)
	})

	t.Run("Patch cannot produce invalid value", func(t *testing.T) {
		bad := int64(-5)
		_, err := UpdateRate(base, "r2", RatePatch{Value: &bad})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}

func TestDeleteRate(t *testing.T) {
	base := RuleSet{UnitID: "u1", BasePrice: 500000, Rates: []PeakRate{
		{ID: "r1", Range: mustRange(t, "2024-01-10", "2024-01-20"), Type: RateFixed, Value: 800000},
	}}

	next, err := DeleteRate(base, "r1")
	require.NoError(t, err)
	assert.Empty(t, next.Rates)
	assert.Len(t, base.Rates, 1)

	_, err = DeleteRate(base, "missing")
	assert.ErrorIs(t, err, ErrRateNotFound)
}
