package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("no matching route returns empty list", func(t *testing.T) {
		env := newTestEnv()
		env.db.AddTrip("Mumbai", "Pune", 180, 40, models.BusTypeDeluxe, march15, "08:00", "11:00")

		offers, err := env.search.Search(ctx, &models.SearchRequest{From: "Pune", To: "Mumbai", Date: "2024-03-15"})
		require.NoError(t, err)
		assert.NotNil(t, offers)
		assert.Empty(t, offers)
	})

	t.Run("city match is case sensitive", func(t *testing.T) {
		env := newTestEnv()
		env.db.AddTrip("Mumbai", "Pune", 180, 40, models.BusTypeDeluxe, march15, "08:00", "11:00")

		offers, err := env.search.Search(ctx, &models.SearchRequest{From: "mumbai", To: "pune", Date: "2024-03-15"})
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("only the requested calendar day", func(t *testing.T) {
		env := newTestEnv()
		trip := env.db.AddTrip("Mumbai", "Pune", 180, 40, models.BusTypeDeluxe, march15, "08:00", "11:00")
		env.db.AddSchedule(trip.Bus.ID, trip.Route.ID, march15.AddDate(0, 0, -1), "09:00", "12:00")
		env.db.AddSchedule(trip.Bus.ID, trip.Route.ID, march15.AddDate(0, 0, 1), "07:00", "10:00")
		// stored with a time-of-day component, still on the 15th
		late := env.db.AddSchedule(trip.Bus.ID, trip.Route.ID, march15.Add(23*time.Hour+59*time.Minute), "23:00", "02:00")

		offers, err := env.search.Search(ctx, &models.SearchRequest{From: "Mumbai", To: "Pune", Date: "2024-03-15"})
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, trip.Schedule.ID, offers[0].ScheduleID)
		assert.Equal(t, late.ID, offers[1].ScheduleID)
	})

	t.Run("sorted by departure time", func(t *testing.T) {
		env := newTestEnv()
		trip := env.db.AddTrip("Mumbai", "Pune", 180, 40, models.BusTypeDeluxe, march15, "16:00", "19:00")
		env.db.AddSchedule(trip.Bus.ID, trip.Route.ID, march15, "06:00", "09:00")
		env.db.AddSchedule(trip.Bus.ID, trip.Route.ID, march15, "11:00", "14:00")
		// a second route row for the same city pair is searched too
		other := env.db.AddTrip("Mumbai", "Pune", 200, 36, models.BusTypeSleeper, march15, "08:30", "11:50")

		offers, err := env.search.Search(ctx, &models.SearchRequest{From: "Mumbai", To: "Pune", Date: "2024-03-15"})
		require.NoError(t, err)
		require.Len(t, offers, 4)

		var departures []string
		for _, o := range offers {
			departures = append(departures, o.DepartureTime)
		}
		assert.Equal(t, []string{"06:00", "08:30", "11:00", "16:00"}, departures)
		assert.Equal(t, other.Schedule.ID, offers[1].ScheduleID)
		assert.Equal(t, 40, offers[1].Price)
		assert.Equal(t, 200, offers[1].TravelTime)
	})

	t.Run("unknown bus type gets the default fare", func(t *testing.T) {
		env := newTestEnv()
		env.db.AddTrip("Mumbai", "Pune", 180, 40, models.BusType("Luxury"), march15, "08:00", "11:00")

		offers, err := env.search.Search(ctx, &models.SearchRequest{From: "Mumbai", To: "Pune", Date: "2024-03-15"})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, models.DefaultFare, offers[0].Price)
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv()
		for _, req := range []*models.SearchRequest{
			{To: "Pune", Date: "2024-03-15"},
			{From: "Mumbai", Date: "2024-03-15"},
			{From: "Mumbai", To: "Pune"},
			{From: "  ", To: "Pune", Date: "2024-03-15"},
		} {
			_, err := env.search.Search(ctx, req)
			assert.Equal(t, models.KindBadRequest, models.KindOf(err))
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.search.Search(ctx, &models.SearchRequest{From: "Mumbai", To: "Pune", Date: "15-03-2024"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "INVALID_DATE", appErr.Code)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		env := newTestEnv()
		env.db.FailOn("routes.FindBySourceAndDestination", errors.New("connection refused"))

		_, err := env.search.Search(ctx, &models.SearchRequest{From: "Mumbai", To: "Pune", Date: "2024-03-15"})
		assert.Equal(t, models.KindInternal, models.KindOf(err))
	})
}

func TestAvailabilityService_ForSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown schedule", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.availability.ForSchedule(ctx, uuid.New())
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
	})

	t.Run("union across bookings", func(t *testing.T) {
		env := newTestEnv()
		trip := env.db.AddTrip("Kolkata", "Delhi", 1440, 48, models.BusTypeSleeper, march15, "18:30", "18:30")

		_, err := env.bookings.Book(ctx, uuid.New(), bookingRequest(trip.Schedule.ID, 12, 4))
		require.NoError(t, err)
		_, err = env.bookings.Book(ctx, uuid.New(), bookingRequest(trip.Schedule.ID, 30))
		require.NoError(t, err)

		availability, err := env.availability.ForSchedule(ctx, trip.Schedule.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{4, 12, 30}, availability.BookedSeats)
		assert.Equal(t, 45, availability.Remaining)
		assert.True(t, availability.IsBooked(12))
		assert.False(t, availability.IsBooked(13))
	})

	t.Run("booked seats failure is internal", func(t *testing.T) {
		env := newTestEnv()
		trip := env.db.AddTrip("Kolkata", "Delhi", 1440, 48, models.BusTypeSleeper, march15, "18:30", "18:30")
		env.db.FailOn("bookings.BookedSeats", errors.New("timeout"))

		_, err := env.availability.ForSchedule(ctx, trip.Schedule.ID)
		assert.Equal(t, models.KindInternal, models.KindOf(err))
	})
}
