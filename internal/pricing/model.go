package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

var (
	ErrRateNotFound   = errors.New("peak rate not found")
	ErrUnitNotFound   = errors.New("unit not found")
	ErrInvalidValue   = errors.New("rate value must be positive")
	ErrInvalidType    = errors.New("invalid rate type")
	ErrAmbiguousRates = errors.New("multiple peak rates apply with no deterministic winner")
)

// OverlapError reports a peak-rate write that would overlap an existing
// rate. The conflicting rate is included so the owner can adjust.
type OverlapError struct {
	Conflict PeakRate
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("peak rate overlaps existing rate %s covering %s", e.Conflict.ID, e.Conflict.Range)
}

// RateType selects how a peak rate modifies the nightly price.
type RateType string

const (
	// RateFixed replaces the base price with an absolute nightly price.
	RateFixed RateType = "fixed"
	// RatePercentage marks up the base price by Value percent.
	RatePercentage RateType = "percentage"
)

// PeakRate is a date-ranged override of a unit's nightly price.
// A rate belongs to exactly one unit and never outlives it.
type PeakRate struct {
	ID          string
	UnitID      string
	Range       calendar.Range
	Type        RateType
	Value       int64 // minor units for fixed, whole percent for percentage
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RuleSet is the pricing snapshot for one unit: base nightly price in
// minor units plus the unit's peak rates, ordered by range start.
// Resolution is a pure function of the snapshot; callers must hand the
// resolver the latest committed state.
type RuleSet struct {
	UnitID    string
	BasePrice int64
	Rates     []PeakRate
}

// ResolvedPrice is the derived nightly price for a single date.
type ResolvedPrice struct {
	Date        calendar.Date
	BasePrice   int64
	FinalPrice  int64
	AppliedRate *PeakRate
}

// StayPrice is the derived price for a whole stay over [Start, End).
type StayPrice struct {
	Range  calendar.Range
	Nights []ResolvedPrice
	Total  int64
}
