package property

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("property not found")
	ErrNameRequired     = errors.New("name is required")
	ErrOwnerRequired    = errors.New("owner_id is required")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrInvalidTimezone  = errors.New("invalid timezone name")
	ErrPermissionDenied = errors.New("permission denied")
)

// Property is a host-owned listing that groups rentable units.
type Property struct {
	ID          string
	OwnerID     string
	Name        string
	Address     string
	Description string
	// Timezone is the IANA zone name shown to guests. Engine dates are
	// normalized to canonical UTC days regardless of this value.
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing properties.
type Filter struct {
	OwnerID  string
	Page     int
	PageSize int
}
