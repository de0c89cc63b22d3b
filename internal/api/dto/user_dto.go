package dto

import (
	"time"

	"github.com/bookline/reservation-service/internal/domain"
)

// UserRequest is the roster create/update payload.
type UserRequest struct {
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	Password   *string         `json:"password,omitempty"`
	Department *string         `json:"department,omitempty"`
	Active     *bool           `json:"active,omitempty"`
}

// UserResponse is the roster read view. Credential hashes are never exposed.
type UserResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Role                domain.UserRole `json:"role"`
	RoleLabel           string          `json:"role_label"`
	Department          *string         `json:"department,omitempty"`
	Active              bool            `json:"active"`
	ManagedReservations int             `json:"managed_reservations"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
