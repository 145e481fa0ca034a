package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/sirupsen/logrus"
)

// CatalogService maintains buses, routes and schedules for administrators
type CatalogService struct {
	buses     BusStore
	routes    RouteStore
	schedules ScheduleStore
	logger    *logrus.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(buses BusStore, routes RouteStore, schedules ScheduleStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		buses:     buses,
		routes:    routes,
		schedules: schedules,
		logger:    logger,
	}
}

const msgBusNumberTaken = "Bus number already exists"

// CreateBus adds a bus. Bus numbers are unique.
func (s *CatalogService) CreateBus(ctx context.Context, req *models.CreateBusRequest) (*models.Bus, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.buses.GetByNumber(ctx, req.BusNumber)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, models.NewInternal("Failed to create bus", err)
	}
	if existing != nil {
		return nil, models.NewConflict("DUPLICATE_BUS_NUMBER", msgBusNumberTaken, nil)
	}

	bus := &models.Bus{
		ID:         uuid.New(),
		BusNumber:  req.BusNumber,
		TotalSeats: req.TotalSeats,
		BusType:    models.BusType(req.BusType),
	}
	if err := s.buses.Create(ctx, bus); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, models.NewConflict("DUPLICATE_BUS_NUMBER", msgBusNumberTaken, err)
		}
		return nil, models.NewInternal("Failed to create bus", err)
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":     bus.ID,
		"bus_number": bus.BusNumber,
	}).Info("Bus created")

	return bus, nil
}

// ListBuses returns every bus
func (s *CatalogService) ListBuses(ctx context.Context) ([]models.Bus, error) {
	buses, err := s.buses.List(ctx)
	if err != nil {
		return nil, models.NewInternal("Failed to load buses", err)
	}
	return buses, nil
}

// CreateRoute adds a route
func (s *CatalogService) CreateRoute(ctx context.Context, req *models.CreateRouteRequest) (*models.Route, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	route := &models.Route{
		ID:          uuid.New(),
		Source:      req.Source,
		Destination: req.Destination,
		TravelTime:  req.TravelTime,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, models.NewInternal("Failed to create route", err)
	}

	s.logger.WithFields(logrus.Fields{
		"route_id":    route.ID,
		"source":      route.Source,
		"destination": route.Destination,
	}).Info("Route created")

	return route, nil
}

// ListRoutes returns every route
func (s *CatalogService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	routes, err := s.routes.List(ctx)
	if err != nil {
		return nil, models.NewInternal("Failed to load routes", err)
	}
	return routes, nil
}

// CreateSchedule adds a trip of an existing bus on an existing route
func (s *CatalogService) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	schedule := req.ToSchedule()

	if _, err := s.buses.GetByID(ctx, schedule.BusID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("Bus")
		}
		return nil, models.NewInternal("Failed to create schedule", err)
	}
	if _, err := s.routes.GetByID(ctx, schedule.RouteID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("Route")
		}
		return nil, models.NewInternal("Failed to create schedule", err)
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, models.NewInternal("Failed to create schedule", err)
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id":  schedule.ID,
		"bus_id":       schedule.BusID,
		"route_id":     schedule.RouteID,
		"journey_date": schedule.JourneyDate.Format("2006-01-02"),
	}).Info("Schedule created")

	return schedule, nil
}

// ListSchedules returns every schedule with its bus and route
func (s *CatalogService) ListSchedules(ctx context.Context) ([]models.ScheduleDetail, error) {
	schedules, err := s.schedules.ListDetails(ctx)
	if err != nil {
		return nil, models.NewInternal("Failed to load schedules", err)
	}
	return schedules, nil
}
