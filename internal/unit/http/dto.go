package http

import (
	"time"

	propHttp "github.com/nekogravitycat/stay-booking-backend/internal/property/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
)

// UnitTag holds minimal unit info for embedding in other responses.
type UnitTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UnitResponse struct {
	ID        string               `json:"id"`
	Property  propHttp.PropertyTag `json:"property"`
	Name      string               `json:"name"`
	Capacity  int                  `json:"capacity"`
	BasePrice int64                `json:"base_price"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func NewUnitResponse(u *unit.Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Property:  propHttp.PropertyTag{ID: u.PropertyID, Name: u.PropertyName},
		Name:      u.Name,
		Capacity:  u.Capacity,
		BasePrice: u.BasePrice,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CreateUnitRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
	BasePrice  int64  `json:"base_price" binding:"required,min=1"`
}

type UpdateUnitRequest struct {
	Name      *string `json:"name"`
	Capacity  *int    `json:"capacity" binding:"omitempty,min=1"`
	BasePrice *int64  `json:"base_price" binding:"omitempty,min=1"`
}
