package domain

import "time"

// Service is a bookable catalog entry. Reservations reference it by id only;
// edits here show up in reservation projections immediately.
type Service struct {
	ID              string
	Name            string
	Price           int
	Description     *string
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
}
