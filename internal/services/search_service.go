package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchService turns a traveler query into bookable offers
type SearchService struct {
	routes       RouteStore
	schedules    ScheduleStore
	availability *AvailabilityService
	logger       *logrus.Logger
}

// NewSearchService creates a new search service
func NewSearchService(routes RouteStore, schedules ScheduleStore, availability *AvailabilityService, logger *logrus.Logger) *SearchService {
	return &SearchService{
		routes:       routes,
		schedules:    schedules,
		availability: availability,
		logger:       logger,
	}
}

// Search returns the offers for schedules on routes matching from and to
// exactly, on the requested calendar day, sorted by departure time
func (s *SearchService) Search(ctx context.Context, req *models.SearchRequest) ([]models.Offer, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	routes, err := s.routes.FindBySourceAndDestination(ctx, req.From, req.To)
	if err != nil {
		return nil, models.NewInternal("Failed to search routes", err)
	}
	if len(routes) == 0 {
		return []models.Offer{}, nil
	}

	routeIDs := make([]uuid.UUID, len(routes))
	for i, r := range routes {
		routeIDs[i] = r.ID
	}

	day := req.Day()
	schedules, err := s.schedules.ListByRoutesAndDateRange(ctx, routeIDs, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, models.NewInternal("Failed to search schedules", err)
	}

	offers := make([]models.Offer, 0, len(schedules))
	for _, sch := range schedules {
		availability, err := s.availability.compute(ctx, sch.ID, sch.Bus.TotalSeats)
		if err != nil {
			return nil, err
		}
		offers = append(offers, models.Offer{
			ScheduleID:     sch.ID,
			BusNumber:      sch.Bus.BusNumber,
			BusType:        sch.Bus.BusType,
			TotalSeats:     sch.Bus.TotalSeats,
			AvailableSeats: availability.Remaining,
			DepartureTime:  sch.DepartureTime,
			ArrivalTime:    sch.ArrivalTime,
			TravelTime:     sch.Route.TravelTime,
			Price:          sch.Bus.BusType.Price(),
		})
	}

	// Zero-padded HH:MM strings sort chronologically.
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].DepartureTime < offers[j].DepartureTime
	})

	s.logger.WithFields(logrus.Fields{
		"from":        req.From,
		"to":          req.To,
		"date":        day.Format("2006-01-02"),
		"results":     len(offers),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Search completed")

	return offers, nil
}
