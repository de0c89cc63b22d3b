package domain

import "time"

// ReservationStatus enumerates workflow states for reservations.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusRejected  ReservationStatus = "Rejected"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusRejected:
		return true
	}
	return false
}

// Reservation is the aggregate for bookings. Requester and service references
// are immutable after creation; the manager reference is set only by staff
// transitions.
type Reservation struct {
	ID          string
	RequesterID string
	ServiceID   string
	ManagerID   *string
	Date        time.Time
	StartTime   string
	Status      ReservationStatus
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
