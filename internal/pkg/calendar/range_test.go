package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := ParseRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewRangeRejectsEmptyAndInverted(t *testing.T) {
	d := NewDate(2024, time.January, 10)

	_, err := NewRange(d, d)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewRange(d.AddDays(1), d)
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := NewRange(d, d.AddDays(1))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Nights())
}

func TestRangeContainsIsHalfOpen(t *testing.T) {
	r := mustRange(t, "2024-12-24", "2024-12-26")

	assert.True(t, r.Contains(NewDate(2024, time.December, 24)))
	assert.True(t, r.Contains(NewDate(2024, time.December, 25)))
	// Checkout day is excluded.
	assert.False(t, r.Contains(NewDate(2024, time.December, 26)))
	assert.False(t, r.Contains(NewDate(2024, time.December, 23)))
}

func TestRangeOverlaps(t *testing.T) {
	base := mustRange(t, "2024-01-10", "2024-01-20")

	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{"Partial overlap from the right", mustRange(t, "2024-01-15", "2024-01-25"), true},
		{"Partial overlap from the left", mustRange(t, "2024-01-05", "2024-01-11"), true},
		{"Contained range", mustRange(t, "2024-01-12", "2024-01-14"), true},
		{"Containing range", mustRange(t, "2024-01-01", "2024-02-01"), true},
		{"Touching at end does not overlap", mustRange(t, "2024-01-20", "2024-01-25"), false},
		{"Touching at start does not overlap", mustRange(t, "2024-01-05", "2024-01-10"), false},
		{"Disjoint", mustRange(t, "2024-03-01", "2024-03-05"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestRangeDates(t *testing.T) {
	r := mustRange(t, "2024-02-27", "2024-03-02")

	dates := r.Dates()
	require.Len(t, dates, 4)
	assert.Equal(t, "2024-02-27", dates[0].String())
	assert.Equal(t, "2024-02-28", dates[1].String())
	assert.Equal(t, "2024-02-29", dates[2].String())
	assert.Equal(t, "2024-03-01", dates[3].String())
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2024, time.March)
	assert.Equal(t, "2024-03-01", r.Start.String())
	assert.Equal(t, "2024-04-01", r.End.String())
	assert.Equal(t, 31, r.Nights())

	// February in a leap year
	assert.Equal(t, 29, MonthRange(2024, time.February).Nights())
}

func TestParseMonth(t *testing.T) {
	r, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", r.Start.String())
	assert.Equal(t, "2024-04-01", r.End.String())

	_, err = ParseMonth("2024-3")
	assert.Error(t, err)
	_, err = ParseMonth("March 2024")
	assert.Error(t, err)
}
