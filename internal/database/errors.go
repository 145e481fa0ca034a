package database

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/lib/pq"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

const (
	uniqueViolation = pq.ErrorCode("23505")

	seatConstraint   = "uq_booking_passengers_confirmed_seat"
	ticketConstraint = "uq_bookings_ticket_id"
)

// seatDetailRegex pulls the seat number out of a unique violation detail like
// `Key (schedule_id, seat_number)=(3f0c…, 2) already exists.`
var seatDetailRegex = regexp.MustCompile(`\(schedule_id, seat_number\)=\([^,]+, (\d+)\)`)

// asUniqueViolation returns the pq error when err is a unique violation
func asUniqueViolation(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr, true
	}
	return nil, false
}

// translateError maps driver errors onto the storage sentinels in models
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if pqErr, ok := asUniqueViolation(err); ok {
		switch pqErr.Constraint {
		case seatConstraint:
			return &models.SeatConflictError{Seat: seatFromDetail(pqErr.Detail)}
		case ticketConstraint:
			return fmt.Errorf("%s: ticket id already issued: %w", op, models.ErrDuplicate)
		default:
			return fmt.Errorf("%s: %w (%s)", op, models.ErrDuplicate, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// seatFromDetail returns 0 when the detail does not name a seat
func seatFromDetail(detail string) int {
	m := seatDetailRegex.FindStringSubmatch(detail)
	if len(m) != 2 {
		return 0
	}
	seat, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return seat
}
