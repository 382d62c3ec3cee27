package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Date is a calendar day with no time component.
// All dates are normalized to midnight UTC so that two Date values
// built from the same day compare equal and can be used as map keys.
// Always construct through Parse, FromTime or NewDate.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse converts an external YYYY-MM-DD string into a canonical Date.
// This is the single conversion point for dates crossing the API boundary.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// FromTime truncates a timestamp to its UTC calendar day.
// Used when scanning DATE columns or normalizing timestamps from callers.
func FromTime(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// Time returns the date as midnight UTC, for storage in DATE columns.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Compare returns -1, 0 or 1 comparing d to other.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// String formats the date in the YYYY-MM-DD wire format.
func (d Date) String() string {
	return d.t.Format(Layout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string through the canonical parser.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
