package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/pkg/validator"
)

// Route connects a source city to a destination city
type Route struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Source      string    `json:"source" db:"source"`
	Destination string    `json:"destination" db:"destination"`
	TravelTime  int       `json:"travelTime" db:"travel_time_minutes"` // minutes
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CreateRouteRequest represents the admin request to add a route
type CreateRouteRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelTime  int    `json:"travelTime"`
}

// Validate validates the create route request
func (r *CreateRouteRequest) Validate() error {
	r.Source = validator.NormalizeCity(r.Source)
	r.Destination = validator.NormalizeCity(r.Destination)
	if r.Source == "" || r.Destination == "" || r.TravelTime == 0 {
		return NewBadRequest("MISSING_FIELDS", "All fields are required")
	}
	if r.TravelTime < 0 {
		return NewBadRequest("INVALID_TRAVEL_TIME", "travelTime must be a positive number of minutes")
	}
	if r.Source == r.Destination {
		return NewBadRequest("INVALID_ROUTE", "source and destination cannot be the same")
	}
	return nil
}
