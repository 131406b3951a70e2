package identity

import (
	"time"

	"github.com/peeves/backend/internal/domain/identity"
	"github.com/peeves/backend/internal/infrastructure/auth"
)

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest updates the shipping profile. The email is read-only
// and deliberately absent.
type UpdateProfileRequest struct {
	FirstName  string `json:"first_name" binding:"max=100"`
	Address    string `json:"address" binding:"max=200"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	City       string `json:"city" binding:"max=100"`
}

// SetAdminRequest grants or revokes the admin claim by email
type SetAdminRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Enabled bool   `json:"enabled"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	Address    string    `json:"address,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	City       string    `json:"city,omitempty"`
	Admin      bool      `json:"admin"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuthResponse carries the token pair plus the account
type AuthResponse struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain user to its API shape
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FirstName:  u.FirstName,
		Address:    u.Address,
		PostalCode: u.PostalCode,
		City:       u.City,
		Admin:      u.Admin,
		CreatedAt:  u.CreatedAt,
	}
}
