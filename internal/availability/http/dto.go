package http

import (
	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

type RangeAvailabilityResponse struct {
	StartDate    calendar.Date   `json:"start_date"`
	EndDate      calendar.Date   `json:"end_date"`
	AllAvailable bool            `json:"all_available"`
	BlockedDates []calendar.Date `json:"blocked_dates"`
}

func NewRangeAvailabilityResponse(ra *availability.RangeAvailability) RangeAvailabilityResponse {
	blocked := ra.BlockedDates
	if blocked == nil {
		blocked = []calendar.Date{}
	}
	return RangeAvailabilityResponse{
		StartDate:    ra.Range.Start,
		EndDate:      ra.Range.End,
		AllAvailable: ra.AllAvailable,
		BlockedDates: blocked,
	}
}

type OverrideWrite struct {
	Date        string `json:"date" binding:"required"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
}

type WriteOverridesRequest struct {
	Writes []OverrideWrite `json:"writes" binding:"required,min=1,dive"`
}

type WriteMonthRequest struct {
	Month       string `json:"month" binding:"required"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
}
