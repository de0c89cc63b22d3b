package dto

import (
	"time"

	"github.com/bookline/reservation-service/internal/domain"
)

// CreateReservationRequest is the public booking payload.
type CreateReservationRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	ServiceID string  `json:"service_id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Notes     *string `json:"notes,omitempty"`
}

// TransitionRequest carries a staff status transition.
type TransitionRequest struct {
	Status       string  `json:"status"`
	ManagerEmail *string `json:"manager_email,omitempty"`
}

// ManagerResponse is the flattened manager block of a reservation view.
type ManagerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ReservationResponse is the denormalized reservation view.
type ReservationResponse struct {
	ID          string                   `json:"id"`
	ClientName  string                   `json:"client_name"`
	ClientPhone string                   `json:"client_phone"`
	ClientEmail string                   `json:"client_email"`
	ServiceName string                   `json:"service_name"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Status      domain.ReservationStatus `json:"status"`
	Notes       *string                  `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Manager     *ManagerResponse         `json:"manager,omitempty"`
}

// NotificationLinkResponse wraps the WhatsApp deep link.
type NotificationLinkResponse struct {
	Link string `json:"link"`
}
