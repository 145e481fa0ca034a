package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/database"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/sirupsen/logrus"
)

// TicketIDGenerator returns a fresh public ticket identifier
type TicketIDGenerator func() (string, error)

// BookingService validates and commits bookings against current availability
type BookingService struct {
	schedules     ScheduleStore
	bookings      BookingStore
	availability  *AvailabilityService
	maxPassengers int
	newTicketID   TicketIDGenerator
	logger        *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	schedules ScheduleStore,
	bookings BookingStore,
	availability *AvailabilityService,
	maxPassengers int,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		schedules:     schedules,
		bookings:      bookings,
		availability:  availability,
		maxPassengers: maxPassengers,
		newTicketID:   database.GenerateTicketID,
		logger:        logger,
	}
}

// SetTicketIDGenerator replaces the ticket id source
func (s *BookingService) SetTicketIDGenerator(gen TicketIDGenerator) {
	s.newTicketID = gen
}

// Book creates a confirmed booking for userID. The first requested seat
// that is already held, in request order, is reported as a seat conflict.
func (s *BookingService) Book(ctx context.Context, userID uuid.UUID, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(s.maxPassengers); err != nil {
		return nil, err
	}
	scheduleID := req.ParsedScheduleID()

	detail, err := s.schedules.GetDetail(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("Schedule")
		}
		return nil, models.NewInternal("Failed to load schedule", err)
	}

	totalSeats := detail.Bus.TotalSeats
	for _, p := range req.Passengers {
		if p.SeatNumber > totalSeats {
			return nil, models.NewBadRequest("INVALID_SEAT",
				fmt.Sprintf("Seat %d does not exist on this bus (1-%d)", p.SeatNumber, totalSeats))
		}
	}

	availability, err := s.availability.compute(ctx, scheduleID, totalSeats)
	if err != nil {
		return nil, err
	}
	for _, p := range req.Passengers {
		if availability.IsBooked(p.SeatNumber) {
			return nil, models.NewSeatConflict(p.SeatNumber)
		}
	}

	ticketID, err := s.newTicketID()
	if err != nil {
		return nil, models.NewInternal("Failed to issue ticket", err)
	}

	booking := &models.Booking{
		ID:         uuid.New(),
		UserID:     userID,
		ScheduleID: scheduleID,
		TicketID:   ticketID,
		Status:     models.BookingStatusConfirmed,
		Passengers: req.Passengers,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		var seatErr *models.SeatConflictError
		switch {
		case errors.As(err, &seatErr):
			// Another booking took the seat between the check and the insert.
			s.logger.WithFields(logrus.Fields{
				"schedule_id": scheduleID,
				"seat":        seatErr.Seat,
			}).Warn("Seat taken by a concurrent booking")
			return nil, models.NewSeatConflict(seatErr.Seat)
		case errors.Is(err, models.ErrDuplicate):
			return nil, models.NewConflict("TICKET_CONFLICT", "Ticket could not be issued, please try again", err)
		default:
			return nil, models.NewInternal("Failed to create booking", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id":   booking.TicketID,
		"schedule_id": scheduleID,
		"user_id":     userID,
		"seats":       booking.SeatNumbers(),
	}).Info("Booking confirmed")

	return booking, nil
}

// Cancel cancels the booking behind ticketID on behalf of userID. Only the
// owner may cancel. It reports false when the booking was already cancelled,
// in which case nothing is written.
func (s *BookingService) Cancel(ctx context.Context, ticketID string, userID uuid.UUID) (bool, error) {
	booking, err := s.bookings.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, models.NewNotFound("Booking")
		}
		return false, models.NewInternal("Failed to load booking", err)
	}

	if booking.UserID != userID {
		return false, models.NewForbidden("Not authorized to cancel this booking")
	}

	if booking.IsCancelled() {
		return false, nil
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusCancelled); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, models.NewNotFound("Booking")
		}
		return false, models.NewInternal("Failed to cancel booking", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticketID,
		"user_id":   userID,
	}).Info("Booking cancelled")

	return true, nil
}

// GetByTicketID returns a booking with its schedule, bus, route and user
func (s *BookingService) GetByTicketID(ctx context.Context, ticketID string) (*models.BookingDetail, error) {
	detail, err := s.bookings.GetDetailByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("Booking")
		}
		return nil, models.NewInternal("Failed to load booking", err)
	}
	return detail, nil
}

// ListForUser returns the user's bookings, newest first
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.BookingDetail, error) {
	bookings, err := s.bookings.ListDetailsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternal("Failed to load bookings", err)
	}
	return bookings, nil
}
