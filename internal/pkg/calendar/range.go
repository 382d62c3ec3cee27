package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("start date must be before end date")

// Range is a half-open date range [Start, End): the start night is
// included, the end date is the checkout day and is never occupied.
type Range struct {
	Start Date
	End   Date
}

// NewRange builds a validated half-open range.
// Zero or negative length ranges are rejected, never clamped.
func NewRange(start, end Date) (Range, error) {
	if !start.Before(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange builds a range from two YYYY-MM-DD strings.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e)
}

// Nights returns the number of nights covered by the range.
func (r Range) Nights() int {
	return int(r.End.Time().Sub(r.Start.Time()).Hours() / 24)
}

// Contains reports whether the date falls inside [Start, End).
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Overlaps reports whether two half-open ranges share at least one night:
// [a,b) and [c,d) overlap iff a < d && c < b. Touching ranges do not.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Dates returns every date in [Start, End), in order.
func (r Range) Dates() []Date {
	dates := make([]Date, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// MonthRange returns the range spanning every day of the given month.
func MonthRange(year int, month time.Month) Range {
	start := NewDate(year, month, 1)
	return Range{Start: start, End: Date{t: start.t.AddDate(0, 1, 0)}}
}

// ParseMonth converts a YYYY-MM string into the range covering that month.
func ParseMonth(s string) (Range, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid month format, expected YYYY-MM: %q", s)
	}
	return MonthRange(t.Year(), t.Month()), nil
}
