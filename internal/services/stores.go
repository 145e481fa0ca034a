package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// The store interfaces below are satisfied by the repositories in
// internal/database and by the in-memory stores in servicetest.

// BusStore persists buses
type BusStore interface {
	Create(ctx context.Context, bus *models.Bus) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bus, error)
	GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error)
	List(ctx context.Context) ([]models.Bus, error)
}

// RouteStore persists routes
type RouteStore interface {
	Create(ctx context.Context, route *models.Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error)
	FindBySourceAndDestination(ctx context.Context, source, destination string) ([]models.Route, error)
	List(ctx context.Context) ([]models.Route, error)
}

// ScheduleStore persists schedules
type ScheduleStore interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.ScheduleDetail, error)
	ListDetails(ctx context.Context) ([]models.ScheduleDetail, error)
	ListByRoutesAndDateRange(ctx context.Context, routeIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleDetail, error)
	Exists(ctx context.Context, busID, routeID uuid.UUID, journeyDate time.Time, departure string) (bool, error)
}

// BookingStore persists bookings. Create must reject a seat already held by
// a confirmed booking on the same schedule with *models.SeatConflictError.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	BookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error)
	GetByTicketID(ctx context.Context, ticketID string) (*models.Booking, error)
	GetDetailByTicketID(ctx context.Context, ticketID string) (*models.BookingDetail, error)
	ListDetailsByUser(ctx context.Context, userID uuid.UUID) ([]models.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
}

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
