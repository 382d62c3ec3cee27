package unit

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("unit not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidProperty  = errors.New("invalid property_id")
	ErrInvalidBasePrice = errors.New("base price must be positive")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
)

// Unit is a rentable unit (e.g., Deluxe Room 101) whose price and
// availability are tracked independently. BasePrice is the default
// nightly price in minor currency units.
type Unit struct {
	ID           string
	PropertyID   string
	PropertyName string
	Name         string
	Capacity     int
	BasePrice    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing units.
type Filter struct {
	PropertyID string
	Page       int
	PageSize   int
}
