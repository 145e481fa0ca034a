package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking() *models.Booking {
	return &models.Booking{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ScheduleID: uuid.New(),
		TicketID:   "TKT-20250301080000-A1B2C3D4",
		Status:     models.BookingStatusConfirmed,
		Passengers: []models.Passenger{
			{SeatNumber: 1, PassengerName: "Asha", Age: 30, Gender: models.GenderFemale},
			{SeatNumber: 2, PassengerName: "Ravi", Age: 32, Gender: models.GenderMale},
		},
	}
}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking := newTestBooking()
		bookedAt := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(booking.ID, booking.UserID, booking.ScheduleID, booking.TicketID, models.BookingStatusConfirmed).
			WillReturnRows(sqlmock.NewRows([]string{"booking_time"}).AddRow(bookedAt))
		mock.ExpectExec(`INSERT INTO booking_passengers`).
			WithArgs(sqlmock.AnyArg(), booking.ID, booking.ScheduleID, 0, 1, "Asha", 30, models.GenderFemale, models.BookingStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO booking_passengers`).
			WithArgs(sqlmock.AnyArg(), booking.ID, booking.ScheduleID, 1, 2, "Ravi", 32, models.GenderMale, models.BookingStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, booking))
		assert.Equal(t, bookedAt, booking.BookingTime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Taken Rolls Back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking := newTestBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"booking_time"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO booking_passengers`).
			WillReturnError(&pq.Error{
				Code:       "23505",
				Constraint: "uq_booking_passengers_confirmed_seat",
				Detail:     "Key (schedule_id, seat_number)=(" + booking.ScheduleID.String() + ", 1) already exists.",
			})
		mock.ExpectRollback()

		err := repo.Create(ctx, booking)
		require.Error(t, err)

		var seatErr *models.SeatConflictError
		require.True(t, errors.As(err, &seatErr))
		assert.Equal(t, 1, seatErr.Seat)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ticket Collision", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_bookings_ticket_id"})
		mock.ExpectRollback()

		err := repo.Create(ctx, newTestBooking())
		assert.ErrorIs(t, err, models.ErrDuplicate)
		assert.Contains(t, err.Error(), "ticket id already issued")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin Fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := repo.Create(ctx, newTestBooking())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})
}

func TestBookingRepository_BookedSeats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	scheduleID := uuid.New()

	mock.ExpectQuery(`SELECT bp.seat_number FROM booking_passengers bp`).
		WithArgs(scheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(1).AddRow(2).AddRow(7))

	seats, err := repo.BookedSeats(context.Background(), scheduleID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, seats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByTicketID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking := newTestBooking()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE ticket_id`).
			WithArgs(booking.TicketID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "ticket_id", "booking_time", "status"}).
				AddRow(booking.ID.String(), booking.UserID.String(), booking.ScheduleID.String(), booking.TicketID, time.Now(), "cancelled"))
		mock.ExpectQuery(`SELECT (.+) FROM booking_passengers WHERE booking_id = ANY`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "seat_number", "passenger_name", "age", "gender"}).
				AddRow(booking.ID.String(), 1, "Asha", 30, "female").
				AddRow(booking.ID.String(), 2, "Ravi", 32, "male"))

		got, err := repo.GetByTicketID(ctx, booking.TicketID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, got.ID)
		assert.True(t, got.IsCancelled())
		assert.Equal(t, []int{1, 2}, got.SeatNumbers())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE ticket_id`).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByTicketID(ctx, "TKT-missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestBookingRepository_GetDetailByTicketID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	booking := newTestBooking()
	busID, routeID := uuid.New(), uuid.New()
	journey := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM bookings bk JOIN users u`).
		WithArgs(booking.TicketID).
		WillReturnRows(sqlmock.NewRows([]string{
			"booking_id", "user_id", "ticket_id", "booking_time", "status",
			"user_name", "user_email", "user_role",
			"id", "bus_id", "route_id", "journey_date", "departure_time", "arrival_time", "created_at",
			"bus_number", "total_seats", "bus_type", "bus_created_at",
			"source", "destination", "travel_time_minutes", "route_created_at",
		}).AddRow(
			booking.ID.String(), booking.UserID.String(), booking.TicketID, time.Now(), "confirmed",
			"Asha", "asha@example.com", "user",
			booking.ScheduleID.String(), busID.String(), routeID.String(), journey, "08:00", "11:00", time.Now(),
			"MH-12-AB-1234", 40, "Deluxe", time.Now(),
			"Mumbai", "Pune", 180, time.Now(),
		))
	mock.ExpectQuery(`FROM booking_passengers`).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "seat_number", "passenger_name", "age", "gender"}).
			AddRow(booking.ID.String(), 1, "Asha", 30, "female"))

	detail, err := repo.GetDetailByTicketID(context.Background(), booking.TicketID)
	require.NoError(t, err)
	assert.Equal(t, booking.ScheduleID, detail.ScheduleID)
	assert.Equal(t, booking.ScheduleID, detail.Schedule.ID)
	assert.Equal(t, busID, detail.Schedule.Bus.ID)
	assert.Equal(t, "Mumbai", detail.Schedule.Route.Source)
	assert.Equal(t, 180, detail.Schedule.Route.TravelTime)
	require.NotNil(t, detail.User)
	assert.Equal(t, "Asha", detail.User.Name)
	assert.Empty(t, detail.User.PasswordHash)
	assert.Len(t, detail.Passengers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListDetailsByUser_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`WHERE bk.user_id = \$1 ORDER BY bk.booking_time DESC`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

	details, err := repo.ListDetailsByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancels Booking And Seats", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE booking_passengers SET status`).
			WithArgs(models.BookingStatusCancelled, id).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateStatus(ctx, id, models.BookingStatusCancelled))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings SET status`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, uuid.New(), models.BookingStatusCancelled)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantSeat int
		wantIs   error
	}{
		{"nil", nil, 0, nil},
		{"no rows", sql.ErrNoRows, 0, models.ErrNotFound},
		{"other unique", &pq.Error{Code: "23505", Constraint: "users_email_key"}, 0, models.ErrDuplicate},
		{"seat without detail", &pq.Error{Code: "23505", Constraint: "uq_booking_passengers_confirmed_seat"}, -1, nil},
		{"seat with detail", &pq.Error{
			Code:       "23505",
			Constraint: "uq_booking_passengers_confirmed_seat",
			Detail:     "Key (schedule_id, seat_number)=(6b1c2e0a-0000-0000-0000-000000000000, 14) already exists.",
		}, 14, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, "op")
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
				return
			}

			var seatErr *models.SeatConflictError
			require.True(t, errors.As(got, &seatErr))
			if tt.wantSeat > 0 {
				assert.Equal(t, tt.wantSeat, seatErr.Seat)
			} else {
				assert.Equal(t, 0, seatErr.Seat)
			}
		})
	}
}
