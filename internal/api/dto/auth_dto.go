package dto

import "time"

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token and identity.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// ValidateResponse reports token validity.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}
