package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// AvailabilityService derives the seat view of a schedule from its confirmed
// bookings. Nothing is cached; every call reads the bookings again.
type AvailabilityService struct {
	schedules ScheduleStore
	bookings  BookingStore
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(schedules ScheduleStore, bookings BookingStore) *AvailabilityService {
	return &AvailabilityService{
		schedules: schedules,
		bookings:  bookings,
	}
}

// ForSchedule returns the booked seats and remaining capacity of a schedule
func (s *AvailabilityService) ForSchedule(ctx context.Context, scheduleID uuid.UUID) (*models.Availability, error) {
	detail, err := s.schedules.GetDetail(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("Schedule")
		}
		return nil, models.NewInternal("Failed to load schedule", err)
	}
	return s.compute(ctx, detail.ID, detail.Bus.TotalSeats)
}

// compute unions the seats of every confirmed booking on the schedule
func (s *AvailabilityService) compute(ctx context.Context, scheduleID uuid.UUID, totalSeats int) (*models.Availability, error) {
	seats, err := s.bookings.BookedSeats(ctx, scheduleID)
	if err != nil {
		return nil, models.NewInternal("Failed to load booked seats", err)
	}

	seen := make(map[int]struct{}, len(seats))
	booked := make([]int, 0, len(seats))
	for _, seat := range seats {
		if _, ok := seen[seat]; ok {
			continue
		}
		seen[seat] = struct{}{}
		booked = append(booked, seat)
	}
	sort.Ints(booked)

	return &models.Availability{
		ScheduleID:  scheduleID,
		TotalSeats:  totalSeats,
		BookedSeats: booked,
		Remaining:   totalSeats - len(booked),
	}, nil
}
