package events

import (
	"time"

	"github.com/bookline/reservation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReservationCreated       EventType = "reservation_created"
	EventReservationStatusChanged EventType = "reservation_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ReservationID string      `json:"reservation_id"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	RequesterID string `json:"requester_id"`
	ServiceID   string `json:"service_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
}

// ReservationStatusChangedPayload payload.
type ReservationStatusChangedPayload struct {
	OldStatus domain.ReservationStatus `json:"old_status"`
	NewStatus domain.ReservationStatus `json:"new_status"`
	ManagerID *string                  `json:"manager_id,omitempty"`
}
