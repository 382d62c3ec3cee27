package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrUnitNotFound     = errors.New("unit not found")
	ErrInvalidRange     = calendar.ErrInvalidRange
	ErrDateConflict     = errors.New("dates already booked")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCheckInPast      = errors.New("check-in date cannot be in the past")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// DatesUnavailableError is the expected, user-facing booking rejection.
// It carries every blocked date in the requested range so the guest can
// adjust the whole stay at once.
type DatesUnavailableError struct {
	BlockedDates []calendar.Date
}

func (e *DatesUnavailableError) Error() string {
	days := make([]string, len(e.BlockedDates))
	for i, d := range e.BlockedDates {
		days[i] = d.String()
	}
	return fmt.Sprintf("dates unavailable: %s", strings.Join(days, ", "))
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is a committed reservation of a unit for [CheckIn, CheckOut).
type Booking struct {
	ID           string
	UnitID       string
	UnitName     string
	PropertyID   string
	PropertyName string
	UserID       string
	UserEmail    string
	CheckIn      calendar.Date
	CheckOut     calendar.Date
	TotalPrice   int64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Quote is the validated price breakdown for an available date range.
type Quote struct {
	UnitID string
	Range  calendar.Range
	Nights []pricing.ResolvedPrice
	Total  int64
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	UnitID   string
	Status   string
	Page     int
	PageSize int
}
