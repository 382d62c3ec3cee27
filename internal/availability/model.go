package availability

import (
	"errors"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

var ErrUnitNotFound = errors.New("unit not found")

// Override is an explicit per-date availability flag for one unit.
// Absence of an override means the date is available.
type Override struct {
	Date        calendar.Date
	IsAvailable bool
}

// Index is the sparse availability snapshot for one unit: only dates
// with an explicit override are present. Because absence already means
// available, a committed Index only ever holds blocked dates.
type Index map[calendar.Date]bool

// RangeAvailability is the derived availability verdict for a range.
type RangeAvailability struct {
	Range        calendar.Range
	AllAvailable bool
	BlockedDates []calendar.Date
}
