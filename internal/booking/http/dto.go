package http

import (
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/booking"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

type BookingResponse struct {
	ID           string        `json:"id"`
	UnitID       string        `json:"unit_id"`
	UnitName     string        `json:"unit_name"`
	PropertyID   string        `json:"property_id"`
	PropertyName string        `json:"property_name"`
	UserID       string        `json:"user_id"`
	UserEmail    string        `json:"user_email"`
	CheckIn      calendar.Date `json:"check_in"`
	CheckOut     calendar.Date `json:"check_out"`
	TotalPrice   int64         `json:"total_price"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		UnitID:       b.UnitID,
		UnitName:     b.UnitName,
		PropertyID:   b.PropertyID,
		PropertyName: b.PropertyName,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	UnitID   string `json:"unit_id" binding:"required,uuid"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type NightPriceResponse struct {
	Date   calendar.Date `json:"date"`
	Price  int64         `json:"price"`
	IsPeak bool          `json:"is_peak"`
}

type QuoteResponse struct {
	UnitID   string               `json:"unit_id"`
	CheckIn  calendar.Date        `json:"check_in"`
	CheckOut calendar.Date        `json:"check_out"`
	Nights   []NightPriceResponse `json:"nights"`
	Total    int64                `json:"total"`
}

func NewQuoteResponse(q *booking.Quote) QuoteResponse {
	nights := make([]NightPriceResponse, len(q.Nights))
	for i, n := range q.Nights {
		nights[i] = NightPriceResponse{
			Date:   n.Date,
			Price:  n.FinalPrice,
			IsPeak: n.AppliedRate != nil,
		}
	}
	return QuoteResponse{
		UnitID:   q.UnitID,
		CheckIn:  q.Range.Start,
		CheckOut: q.Range.End,
		Nights:   nights,
		Total:    q.Total,
	}
}

type CalendarCellResponse struct {
	Date        calendar.Date `json:"date"`
	Price       int64         `json:"price"`
	IsPeak      bool          `json:"is_peak"`
	IsAvailable bool          `json:"is_available"`
}

// UnavailableResponse reports the blocked dates behind a rejected stay.
type UnavailableResponse struct {
	Error        string          `json:"error"`
	BlockedDates []calendar.Date `json:"blocked_dates"`
}
