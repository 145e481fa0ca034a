package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusType_Price(t *testing.T) {
	assert.Equal(t, 50, BusTypeDeluxe.Price())
	assert.Equal(t, 40, BusTypeSleeper.Price())
	assert.Equal(t, 30, BusTypeStandard.Price())
	assert.Equal(t, DefaultFare, BusType("Volvo AC").Price())
	assert.False(t, BusType("Volvo AC").Valid())
}

func validPassenger(seat int) Passenger {
	return Passenger{SeatNumber: seat, PassengerName: "Ravi", Age: 34, Gender: GenderMale}
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	scheduleID := uuid.New()

	t.Run("Valid", func(t *testing.T) {
		req := CreateBookingRequest{
			ScheduleID: scheduleID.String(),
			Passengers: []Passenger{{SeatNumber: 3, PassengerName: "  Ravi ", Age: 0, Gender: GenderOther}},
		}
		require.NoError(t, req.Validate(6))
		assert.Equal(t, scheduleID, req.ParsedScheduleID())
		assert.Equal(t, "Ravi", req.Passengers[0].PassengerName)
	})

	tests := []struct {
		name string
		req  CreateBookingRequest
		code string
	}{
		{"missing schedule", CreateBookingRequest{Passengers: []Passenger{validPassenger(1)}}, "MISSING_FIELDS"},
		{"no passengers", CreateBookingRequest{ScheduleID: scheduleID.String()}, "MISSING_FIELDS"},
		{"bad schedule id", CreateBookingRequest{ScheduleID: "abc", Passengers: []Passenger{validPassenger(1)}}, "INVALID_SCHEDULE_ID"},
		{"zero seat", CreateBookingRequest{ScheduleID: scheduleID.String(), Passengers: []Passenger{validPassenger(0)}}, "INVALID_SEAT"},
		{"duplicate seat", CreateBookingRequest{ScheduleID: scheduleID.String(), Passengers: []Passenger{validPassenger(4), validPassenger(4)}}, "DUPLICATE_SEAT"},
		{"bad gender", CreateBookingRequest{ScheduleID: scheduleID.String(), Passengers: []Passenger{{SeatNumber: 1, PassengerName: "A", Age: 3, Gender: "x"}}}, "INVALID_PASSENGER"},
		{"blank name", CreateBookingRequest{ScheduleID: scheduleID.String(), Passengers: []Passenger{{SeatNumber: 1, PassengerName: "  ", Gender: GenderFemale}}}, "INVALID_PASSENGER"},
		{"too many", CreateBookingRequest{ScheduleID: scheduleID.String(), Passengers: []Passenger{validPassenger(1), validPassenger(2), validPassenger(3)}}, "TOO_MANY_PASSENGERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(2)
			var appErr *AppError
			require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
			assert.Equal(t, KindBadRequest, appErr.Kind)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestSearchRequest_Validate(t *testing.T) {
	req := SearchRequest{From: "  Navi   Mumbai ", To: "Pune", Date: "2024-03-15T18:30:00Z"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Navi Mumbai", req.From)
	assert.Equal(t, "2024-03-15", req.Day().Format("2006-01-02"))
	assert.Zero(t, req.Day().Hour())
}

func TestBooking_Helpers(t *testing.T) {
	b := Booking{Status: BookingStatusConfirmed, Passengers: []Passenger{validPassenger(9), validPassenger(2)}}
	assert.Equal(t, []int{9, 2}, b.SeatNumbers())
	assert.False(t, b.IsCancelled())

	a := Availability{BookedSeats: []int{2, 9}}
	assert.True(t, a.IsBooked(9))
	assert.False(t, a.IsBooked(3))
}

func TestErrors(t *testing.T) {
	t.Run("KindOf", func(t *testing.T) {
		assert.Equal(t, ErrorKind(""), KindOf(nil))
		assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
		assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NewNotFound("Booking"))))
	})

	t.Run("Seat Conflict", func(t *testing.T) {
		err := NewSeatConflict(12)
		assert.Equal(t, KindConflict, err.Kind)
		assert.Equal(t, "Seat 12 is already booked", err.Error())
		assert.True(t, IsSeatConflict(err))
		assert.False(t, IsSeatConflict(NewNotFound("Schedule")))
	})

	t.Run("Internal Hides Cause In Message", func(t *testing.T) {
		cause := errors.New("pq: deadlock detected")
		err := NewInternal("Failed to create booking", cause)
		assert.Equal(t, "Failed to create booking", err.Message)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Not Found Wraps Sentinel", func(t *testing.T) {
		err := NewNotFound("Schedule")
		assert.Equal(t, "Schedule not found", err.Error())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
