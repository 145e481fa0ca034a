package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/pkg/validator"
)

// Schedule is one concrete trip of a bus along a route on a calendar date.
// Departure and arrival are zero-padded "HH:MM" wall-clock strings.
type Schedule struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BusID         uuid.UUID `json:"busId" db:"bus_id"`
	RouteID       uuid.UUID `json:"routeId" db:"route_id"`
	JourneyDate   time.Time `json:"dateOfJourney" db:"journey_date"`
	DepartureTime string    `json:"departureTime" db:"departure_time"`
	ArrivalTime   string    `json:"arrivalTime" db:"arrival_time"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// ScheduleDetail is a schedule with its bus and route resolved
type ScheduleDetail struct {
	Schedule
	Bus   Bus   `json:"bus"`
	Route Route `json:"route"`
}

// CreateScheduleRequest represents the admin request to add a schedule
type CreateScheduleRequest struct {
	BusID         string `json:"busId"`
	RouteID       string `json:"routeId"`
	DateOfJourney string `json:"dateOfJourney"` // YYYY-MM-DD
	DepartureTime string `json:"departureTime"` // HH:MM
	ArrivalTime   string `json:"arrivalTime"`   // HH:MM

	busID       uuid.UUID
	routeID     uuid.UUID
	journeyDate time.Time
}

// Validate validates the request and parses its identifiers and date
func (r *CreateScheduleRequest) Validate() error {
	if r.BusID == "" || r.RouteID == "" || r.DateOfJourney == "" || r.DepartureTime == "" || r.ArrivalTime == "" {
		return NewBadRequest("MISSING_FIELDS", "All fields are required")
	}

	var err error
	if r.busID, err = uuid.Parse(r.BusID); err != nil {
		return NewBadRequest("INVALID_BUS_ID", "busId is not a valid identifier")
	}
	if r.routeID, err = uuid.Parse(r.RouteID); err != nil {
		return NewBadRequest("INVALID_ROUTE_ID", "routeId is not a valid identifier")
	}
	if r.journeyDate, err = validator.ParseJourneyDate(r.DateOfJourney); err != nil {
		return NewBadRequest("INVALID_DATE", err.Error())
	}
	if err := validator.ValidateClockTime(r.DepartureTime); err != nil {
		return NewBadRequest("INVALID_DEPARTURE_TIME", "departureTime: "+err.Error())
	}
	if err := validator.ValidateClockTime(r.ArrivalTime); err != nil {
		return NewBadRequest("INVALID_ARRIVAL_TIME", "arrivalTime: "+err.Error())
	}
	return nil
}

// ToSchedule builds a schedule from a validated request
func (r *CreateScheduleRequest) ToSchedule() *Schedule {
	return &Schedule{
		ID:            uuid.New(),
		BusID:         r.busID,
		RouteID:       r.routeID,
		JourneyDate:   r.journeyDate,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
	}
}

// Availability is the derived seat view of one schedule
type Availability struct {
	ScheduleID  uuid.UUID `json:"scheduleId"`
	TotalSeats  int       `json:"totalSeats"`
	BookedSeats []int     `json:"bookedSeats"`
	Remaining   int       `json:"availableSeats"`
}

// IsBooked reports whether seat is taken
func (a *Availability) IsBooked(seat int) bool {
	for _, s := range a.BookedSeats {
		if s == seat {
			return true
		}
	}
	return false
}
