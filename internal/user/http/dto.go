package http

import (
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

// UserTag holds minimal user info for embedding in other responses.
type UserTag struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	DisplayName   *string    `json:"display_name"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	IsSystemAdmin bool       `json:"is_system_admin"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
		IsSystemAdmin: u.IsSystemAdmin,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
