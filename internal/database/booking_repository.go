package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// BookingRepository handles database operations for bookings and their
// passenger seats
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// passengerRow is one booking_passengers row
type passengerRow struct {
	BookingID uuid.UUID `db:"booking_id"`
	models.Passenger
}

// bookingDetailRow is a booking joined with its schedule, bus, route and user
type bookingDetailRow struct {
	BookingID   uuid.UUID            `db:"booking_id"`
	UserID      uuid.UUID            `db:"user_id"`
	TicketID    string               `db:"ticket_id"`
	BookingTime time.Time            `db:"booking_time"`
	Status      models.BookingStatus `db:"status"`
	UserName    string               `db:"user_name"`
	UserEmail   string               `db:"user_email"`
	UserRole    models.Role          `db:"user_role"`
	scheduleDetailRow
}

const bookingDetailQuery = `
	SELECT
		bk.id AS booking_id, bk.user_id, bk.ticket_id, bk.booking_time, bk.status,
		u.name AS user_name, u.email AS user_email, u.role AS user_role,
	` + scheduleDetailColumns + `
	FROM bookings bk
	JOIN users u ON u.id = bk.user_id
	JOIN schedules s ON s.id = bk.schedule_id
	JOIN buses b ON b.id = s.bus_id
	JOIN routes r ON r.id = s.route_id
`

// Create inserts the booking and one row per passenger in a single
// transaction. A seat already held by a confirmed booking on the same
// schedule returns *models.SeatConflictError.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bookingQuery := `
		INSERT INTO bookings (id, user_id, schedule_id, ticket_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING booking_time
	`
	err = tx.QueryRowxContext(ctx, bookingQuery,
		booking.ID, booking.UserID, booking.ScheduleID, booking.TicketID, booking.Status,
	).Scan(&booking.BookingTime)
	if err != nil {
		return translateError(err, "failed to create booking")
	}

	passengerQuery := `
		INSERT INTO booking_passengers (
			id, booking_id, schedule_id, position, seat_number,
			passenger_name, age, gender, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i, p := range booking.Passengers {
		_, err = tx.ExecContext(ctx, passengerQuery,
			uuid.New(), booking.ID, booking.ScheduleID, i, p.SeatNumber,
			p.PassengerName, p.Age, p.Gender, booking.Status,
		)
		if err != nil {
			return translateError(err, "failed to create booking passenger")
		}
	}

	if err := tx.Commit(); err != nil {
		return translateError(err, "failed to commit booking")
	}
	return nil
}

// BookedSeats returns the seats held by confirmed bookings on a schedule,
// ascending
func (r *BookingRepository) BookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error) {
	query := `
		SELECT bp.seat_number
		FROM booking_passengers bp
		JOIN bookings bk ON bk.id = bp.booking_id
		WHERE bp.schedule_id = $1 AND bk.status = 'confirmed'
		ORDER BY bp.seat_number
	`

	seats := []int{}
	if err := r.db.SelectContext(ctx, &seats, query, scheduleID); err != nil {
		return nil, translateError(err, "failed to get booked seats")
	}
	return seats, nil
}

// GetByTicketID retrieves a booking and its passengers by public ticket id
func (r *BookingRepository) GetByTicketID(ctx context.Context, ticketID string) (*models.Booking, error) {
	query := `
		SELECT id, user_id, schedule_id, ticket_id, booking_time, status
		FROM bookings
		WHERE ticket_id = $1
	`

	booking := &models.Booking{}
	if err := r.db.GetContext(ctx, booking, query, ticketID); err != nil {
		return nil, translateError(err, "failed to get booking")
	}

	passengers, err := r.passengersFor(ctx, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Passengers = passengers[booking.ID]
	return booking, nil
}

// GetDetailByTicketID retrieves a booking with schedule, bus, route and user
func (r *BookingRepository) GetDetailByTicketID(ctx context.Context, ticketID string) (*models.BookingDetail, error) {
	var row bookingDetailRow
	if err := r.db.GetContext(ctx, &row, bookingDetailQuery+` WHERE bk.ticket_id = $1`, ticketID); err != nil {
		return nil, translateError(err, "failed to get booking detail")
	}

	passengers, err := r.passengersFor(ctx, []uuid.UUID{row.BookingID})
	if err != nil {
		return nil, err
	}
	detail := row.toDetail(passengers[row.BookingID])
	return &detail, nil
}

// ListDetailsByUser retrieves a user's bookings, newest first
func (r *BookingRepository) ListDetailsByUser(ctx context.Context, userID uuid.UUID) ([]models.BookingDetail, error) {
	var rows []bookingDetailRow
	query := bookingDetailQuery + ` WHERE bk.user_id = $1 ORDER BY bk.booking_time DESC`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, translateError(err, "failed to list bookings")
	}
	if len(rows) == 0 {
		return []models.BookingDetail{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].BookingID
	}
	passengers, err := r.passengersFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]models.BookingDetail, len(rows))
	for i := range rows {
		details[i] = rows[i].toDetail(passengers[rows[i].BookingID])
	}
	return details, nil
}

// UpdateStatus sets the status of a booking and of its passenger seats in
// one transaction
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return translateError(err, "failed to update booking status")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "failed to update booking status")
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `UPDATE booking_passengers SET status = $1 WHERE booking_id = $2`, status, id); err != nil {
		return translateError(err, "failed to update passenger status")
	}

	if err := tx.Commit(); err != nil {
		return translateError(err, "failed to commit booking status")
	}
	return nil
}

// passengersFor loads the passengers of the given bookings keyed by booking id,
// each list in booking order
func (r *BookingRepository) passengersFor(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]models.Passenger, error) {
	query := `
		SELECT booking_id, seat_number, passenger_name, age, gender
		FROM booking_passengers
		WHERE booking_id = ANY($1::uuid[])
		ORDER BY booking_id, position
	`

	var rows []passengerRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(bookingIDs))); err != nil {
		return nil, translateError(err, "failed to load passengers")
	}

	out := make(map[uuid.UUID][]models.Passenger, len(bookingIDs))
	for _, row := range rows {
		out[row.BookingID] = append(out[row.BookingID], row.Passenger)
	}
	return out, nil
}

func (row *bookingDetailRow) toDetail(passengers []models.Passenger) models.BookingDetail {
	if passengers == nil {
		passengers = []models.Passenger{}
	}
	return models.BookingDetail{
		Booking: models.Booking{
			ID:          row.BookingID,
			UserID:      row.UserID,
			ScheduleID:  row.Schedule.ID,
			TicketID:    row.TicketID,
			BookingTime: row.BookingTime,
			Status:      row.Status,
			Passengers:  passengers,
		},
		Schedule: row.scheduleDetailRow.toDetail(),
		User: &models.User{
			ID:    row.UserID,
			Name:  row.UserName,
			Email: row.UserEmail,
			Role:  row.UserRole,
		},
	}
}
