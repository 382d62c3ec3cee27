package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
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

func TestResolveDate(t *testing.T) {
	idx := Index{
		mustDate(t, "2024-02-02"): false,
	}

	assert.False(t, ResolveDate(idx, mustDate(t, "2024-02-02")))
	// No override means default available.
	assert.True(t, ResolveDate(idx, mustDate(t, "2024-02-03")))
	assert.True(t, ResolveDate(Index{}, mustDate(t, "2024-02-02")))
}

func TestResolveRange(t *testing.T) {
	idx := Index{
		mustDate(t, "2024-02-02"): false,
		mustDate(t, "2024-02-04"): false,
		mustDate(t, "2024-02-05"): false, // checkout day, must not matter
	}

	t.Run("Collects every blocked date, not just the first", func(t *testing.T) {
		got := ResolveRange(idx, mustRange(t, "2024-02-01", "2024-02-05"))

		assert.False(t, got.AllAvailable)
		require.Len(t, got.BlockedDates, 2)
		assert.Equal(t, "2024-02-02", got.BlockedDates[0].String())
		assert.Equal(t, "2024-02-04", got.BlockedDates[1].String())
	})

	t.Run("Checkout date is never required to be available", func(t *testing.T) {
		got := ResolveRange(idx, mustRange(t, "2024-02-03", "2024-02-04"))
		assert.True(t, got.AllAvailable)
		assert.Empty(t, got.BlockedDates)
	})

	t.Run("Single-night range checks exactly one date", func(t *testing.T) {
		got := ResolveRange(idx, mustRange(t, "2024-02-02", "2024-02-03"))
		assert.False(t, got.AllAvailable)
		require.Len(t, got.BlockedDates, 1)
		assert.Equal(t, "2024-02-02", got.BlockedDates[0].String())
	})

	t.Run("Open range", func(t *testing.T) {
		got := ResolveRange(idx, mustRange(t, "2024-03-01", "2024-03-10"))
		assert.True(t, got.AllAvailable)
	})
}
