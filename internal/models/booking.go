package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Gender of a passenger
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender value
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Passenger is one seat holder on a booking
type Passenger struct {
	SeatNumber    int    `json:"seatNumber" db:"seat_number"`
	PassengerName string `json:"passengerName" db:"passenger_name"`
	Age           int    `json:"age" db:"age"`
	Gender        Gender `json:"gender" db:"gender"`
}

// Booking is a traveler's reservation on one schedule. Bookings are never
// deleted; cancellation flips Status.
type Booking struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"userId" db:"user_id"`
	ScheduleID  uuid.UUID     `json:"scheduleId" db:"schedule_id"`
	TicketID    string        `json:"ticketId" db:"ticket_id"`
	BookingTime time.Time     `json:"bookingTime" db:"booking_time"`
	Status      BookingStatus `json:"status" db:"status"`
	Passengers  []Passenger   `json:"passengers"`
}

// SeatNumbers returns the seats held by the booking in passenger order
func (b *Booking) SeatNumbers() []int {
	seats := make([]int, len(b.Passengers))
	for i, p := range b.Passengers {
		seats[i] = p.SeatNumber
	}
	return seats
}

// IsCancelled reports whether the booking was cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// BookingDetail is a booking with its schedule, bus, route and owner resolved
type BookingDetail struct {
	Booking
	Schedule ScheduleDetail `json:"schedule"`
	User     *User          `json:"user,omitempty"`
}

// CreateBookingRequest is the body of POST /bookings
type CreateBookingRequest struct {
	ScheduleID string      `json:"scheduleId"`
	Passengers []Passenger `json:"passengers"`

	scheduleID uuid.UUID
}

// Validate checks the request shape. Seat bounds against the bus are
// checked by the booking service once the schedule is resolved.
func (r *CreateBookingRequest) Validate(maxPassengers int) error {
	if r.ScheduleID == "" || len(r.Passengers) == 0 {
		return NewBadRequest("MISSING_FIELDS", "Schedule ID and passengers are required")
	}

	id, err := uuid.Parse(r.ScheduleID)
	if err != nil {
		return NewBadRequest("INVALID_SCHEDULE_ID", "scheduleId is not a valid identifier")
	}
	r.scheduleID = id

	if maxPassengers > 0 && len(r.Passengers) > maxPassengers {
		return NewBadRequest("TOO_MANY_PASSENGERS",
			fmt.Sprintf("A booking can hold at most %d passengers", maxPassengers))
	}

	return ValidatePassengers(r.Passengers)
}

// ParsedScheduleID returns the schedule id parsed by Validate
func (r *CreateBookingRequest) ParsedScheduleID() uuid.UUID {
	return r.scheduleID
}

// ValidatePassengers checks each passenger entry and rejects a seat
// requested twice within the same booking
func ValidatePassengers(passengers []Passenger) error {
	seen := make(map[int]bool, len(passengers))
	for i := range passengers {
		p := &passengers[i]
		p.PassengerName = strings.TrimSpace(p.PassengerName)

		if p.SeatNumber <= 0 {
			return NewBadRequest("INVALID_SEAT", fmt.Sprintf("passengers[%d]: seatNumber must be a positive integer", i))
		}
		if p.PassengerName == "" {
			return NewBadRequest("INVALID_PASSENGER", fmt.Sprintf("passengers[%d]: passengerName is required", i))
		}
		if p.Age < 0 || p.Age > 150 {
			return NewBadRequest("INVALID_PASSENGER", fmt.Sprintf("passengers[%d]: age is out of range", i))
		}
		if !p.Gender.Valid() {
			return NewBadRequest("INVALID_PASSENGER", fmt.Sprintf("passengers[%d]: gender must be male, female or other", i))
		}
		if seen[p.SeatNumber] {
			return NewBadRequest("DUPLICATE_SEAT", fmt.Sprintf("Seat %d is requested more than once", p.SeatNumber))
		}
		seen[p.SeatNumber] = true
	}
	return nil
}
