package http

import (
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/property"
)

// PropertyTag holds minimal property info for embedding in other responses.
type PropertyTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PropertyResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Timezone:    p.Timezone,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}

type UpdatePropertyRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Timezone    *string `json:"timezone"`
}
