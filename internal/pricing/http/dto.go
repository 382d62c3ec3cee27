package http

import (
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
)

type PeakRateResponse struct {
	ID          string        `json:"id"`
	UnitID      string        `json:"unit_id"`
	StartDate   calendar.Date `json:"start_date"`
	EndDate     calendar.Date `json:"end_date"`
	RateType    string        `json:"rate_type"`
	Value       int64         `json:"value"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func NewPeakRateResponse(r *pricing.PeakRate) PeakRateResponse {
	return PeakRateResponse{
		ID:          r.ID,
		UnitID:      r.UnitID,
		StartDate:   r.Range.Start,
		EndDate:     r.Range.End,
		RateType:    string(r.Type),
		Value:       r.Value,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CreatePeakRateRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	RateType    string `json:"rate_type" binding:"required,oneof=fixed percentage"`
	Value       int64  `json:"value" binding:"required,min=1"`
	Description string `json:"description"`
}

type UpdatePeakRateRequest struct {
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	RateType    *string `json:"rate_type" binding:"omitempty,oneof=fixed percentage"`
	Value       *int64  `json:"value" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// ConflictResponse reports the rate that blocked an overlapping write.
type ConflictResponse struct {
	Error    string           `json:"error"`
	Conflict PeakRateResponse `json:"conflict"`
}
