package auth

import (
	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/internal/users"
)

// RegisterRequest contains the payload required for onboarding a new restaurant.
type RegisterRequest struct {
	RestaurantName string  `json:"restaurant_name" validate:"required"`
	Phone          string  `json:"phone" validate:"required"`
	WhatsAppNumber string  `json:"whatsapp_number" validate:"required"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	OwnerName      string  `json:"owner_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	AcceptTOS      bool    `json:"accept_tos"`
}

// RegisterResponse returns the identifiers assigned during onboarding.
type RegisterResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Slug     string    `json:"slug"`
	OwnerID  uuid.UUID `json:"owner_id"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TenantSummary describes the tenant metadata returned after login.
type TenantSummary struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// LoginResponse contains the tokens, user, and tenant produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Tenant       *TenantSummary `json:"tenant,omitempty"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
