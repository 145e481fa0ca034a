package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BusType represents the category of a bus
type BusType string

const (
	BusTypeStandard BusType = "Standard"
	BusTypeSleeper  BusType = "Sleeper"
	BusTypeDeluxe   BusType = "Deluxe"
)

// DefaultFare is charged for categories without an explicit price
const DefaultFare = 30

// Valid reports whether t is one of the known categories
func (t BusType) Valid() bool {
	switch t {
	case BusTypeStandard, BusTypeSleeper, BusTypeDeluxe:
		return true
	}
	return false
}

// Price returns the per-seat fare for the category
func (t BusType) Price() int {
	switch t {
	case BusTypeDeluxe:
		return 50
	case BusTypeSleeper:
		return 40
	case BusTypeStandard:
		return 30
	default:
		return DefaultFare
	}
}

// Bus is a vehicle in the catalog
type Bus struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BusNumber  string    `json:"busNumber" db:"bus_number"`
	TotalSeats int       `json:"totalSeats" db:"total_seats"`
	BusType    BusType   `json:"busType" db:"bus_type"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CreateBusRequest represents the admin request to add a bus
type CreateBusRequest struct {
	BusNumber  string `json:"busNumber"`
	TotalSeats int    `json:"totalSeats"`
	BusType    string `json:"busType"`
}

// Validate validates the create bus request
func (r *CreateBusRequest) Validate() error {
	r.BusNumber = strings.TrimSpace(r.BusNumber)
	if r.BusNumber == "" || r.TotalSeats == 0 || r.BusType == "" {
		return NewBadRequest("MISSING_FIELDS", "All fields are required")
	}
	if r.TotalSeats < 0 {
		return NewBadRequest("INVALID_TOTAL_SEATS", "totalSeats must be a positive integer")
	}
	if !BusType(r.BusType).Valid() {
		return NewBadRequest("INVALID_BUS_TYPE", "busType must be one of Standard, Sleeper, Deluxe")
	}
	return nil
}
