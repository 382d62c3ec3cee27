package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

func TestApply(t *testing.T) {
	t.Run("Blocking a date stores an override", func(t *testing.T) {
		next := Apply(Index{}, []Override{
			{Date: mustDate(t, "2024-03-05"), IsAvailable: false},
		})
		require.Len(t, next, 1)
		assert.False(t, ResolveDate(next, mustDate(t, "2024-03-05")))
	})

	t.Run("Opening a date with no override is a no-op", func(t *testing.T) {
		next := Apply(Index{}, []Override{
			{Date: mustDate(t, "2024-03-05"), IsAvailable: true},
		})
		assert.Empty(t, next)
	})

	t.Run("Opening a blocked date removes the override", func(t *testing.T) {
		idx := Index{mustDate(t, "2024-03-05"): false}
		next := Apply(idx, []Override{
			{Date: mustDate(t, "2024-03-05"), IsAvailable: true},
		})
		assert.Empty(t, next)
		// Input untouched.
		assert.Len(t, idx, 1)
	})

	t.Run("Last write wins within a batch", func(t *testing.T) {
		d := mustDate(t, "2024-03-05")
		next := Apply(Index{}, []Override{
			{Date: d, IsAvailable: false},
			{Date: d, IsAvailable: true},
		})
		assert.Empty(t, next)

		next = Apply(Index{}, []Override{
			{Date: d, IsAvailable: true},
			{Date: d, IsAvailable: false},
		})
		require.Len(t, next, 1)
		assert.False(t, ResolveDate(next, d))
	})

	t.Run("Unrelated overrides survive", func(t *testing.T) {
		idx := Index{mustDate(t, "2024-03-01"): false}
		next := Apply(idx, []Override{
			{Date: mustDate(t, "2024-03-05"), IsAvailable: false},
		})
		require.Len(t, next, 2)
		assert.False(t, ResolveDate(next, mustDate(t, "2024-03-01")))
	})
}

func TestApplyRange(t *testing.T) {
	r := mustRange(t, "2024-03-10", "2024-03-13")

	next := ApplyRange(Index{}, r, false)
	require.Len(t, next, 3)
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		assert.False(t, ResolveDate(next, d))
	}
	// End date untouched: half-open expansion.
	assert.True(t, ResolveDate(next, r.End))
}

func TestApplyMonthIdempotent(t *testing.T) {
	march := calendar.MonthRange(2024, time.March)

	// Opening an already-open month stores nothing.
	first := ApplyRange(Index{}, march, true)
	assert.Empty(t, first)

	// And doing it twice yields the same result.
	second := ApplyRange(first, march, true)
	assert.Equal(t, first, second)

	// Blocking then opening the whole month round-trips to empty.
	blocked := ApplyRange(Index{}, march, false)
	assert.Len(t, blocked, march.Nights())
	reopened := ApplyRange(blocked, march, true)
	assert.Empty(t, reopened)
}
