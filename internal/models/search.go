package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/pkg/validator"
)

// SearchRequest represents a traveler's search query
type SearchRequest struct {
	From string `json:"from"` // Source city, matched exactly
	To   string `json:"to"`   // Destination city, matched exactly
	Date string `json:"date"` // YYYY-MM-DD

	day time.Time
}

// Validate validates the search request and parses the date
func (r *SearchRequest) Validate() error {
	r.From = validator.NormalizeCity(r.From)
	r.To = validator.NormalizeCity(r.To)
	if r.From == "" || r.To == "" || strings.TrimSpace(r.Date) == "" {
		return NewBadRequest("MISSING_FIELDS", "All fields are required")
	}

	day, err := validator.ParseJourneyDate(r.Date)
	if err != nil {
		return NewBadRequest("INVALID_DATE", err.Error())
	}
	r.day = day
	return nil
}

// Day returns the requested calendar day at 00:00 UTC
func (r *SearchRequest) Day() time.Time {
	return r.day
}

// Offer is one bookable schedule in search results
type Offer struct {
	ScheduleID     uuid.UUID `json:"scheduleId"`
	BusNumber      string    `json:"busNumber"`
	BusType        BusType   `json:"busType"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	DepartureTime  string    `json:"departureTime"`
	ArrivalTime    string    `json:"arrivalTime"`
	TravelTime     int       `json:"travelTime"`
	Price          int       `json:"price"`
}

// SearchResponse is the body returned by POST /search
type SearchResponse struct {
	Success bool    `json:"success"`
	Buses   []Offer `json:"buses"`
}
