package dto

import "time"

// ServiceRequest is the catalog create/update payload.
type ServiceRequest struct {
	Name            string  `json:"name"`
	Price           int     `json:"price"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Active          *bool   `json:"active,omitempty"`
}

// ServiceResponse is the catalog read view.
type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           int       `json:"price"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
