package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/pkg/validator"
	"github.com/sirupsen/logrus"
)

// RouteSeed is one city pair to make sure exists
type RouteSeed struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	TravelTime  int    `yaml:"travel_time"`
}

// SeedPlan describes the catalog the generator fills in
type SeedPlan struct {
	Routes         []RouteSeed `yaml:"routes"`
	BusCount       int         `yaml:"bus_count"`
	SeatOptions    []int       `yaml:"seat_options"`
	Days           int         `yaml:"days"`
	PerDayMin      int         `yaml:"per_day_min"`
	PerDayMax      int         `yaml:"per_day_max"`
	DepartureTimes []string    `yaml:"departure_times"`

	// StartDate is the first journey date. Zero means today (UTC).
	StartDate time.Time `yaml:"-"`
}

// DefaultSeedPlan returns eight popular Indian city pairs served by a pool of
// thirty buses, two to three departures a day for the next fourteen days
func DefaultSeedPlan() SeedPlan {
	return SeedPlan{
		Routes: []RouteSeed{
			{Source: "Mumbai", Destination: "Pune", TravelTime: 180},
			{Source: "Mumbai", Destination: "Ahmedabad", TravelTime: 600},
			{Source: "Delhi", Destination: "Jaipur", TravelTime: 270},
			{Source: "Bangalore", Destination: "Chennai", TravelTime: 360},
			{Source: "Hyderabad", Destination: "Bangalore", TravelTime: 300},
			{Source: "Kolkata", Destination: "Delhi", TravelTime: 1440},
			{Source: "Pune", Destination: "Goa", TravelTime: 300},
			{Source: "Lucknow", Destination: "Varanasi", TravelTime: 240},
		},
		BusCount:       30,
		SeatOptions:    []int{36, 40, 44, 48, 50},
		Days:           14,
		PerDayMin:      2,
		PerDayMax:      3,
		DepartureTimes: []string{"06:00", "08:30", "11:00", "13:30", "16:00", "18:30", "21:00"},
	}
}

// Validate checks that the plan can be generated
func (p *SeedPlan) Validate() error {
	if len(p.Routes) == 0 {
		return fmt.Errorf("plan has no routes")
	}
	for i, r := range p.Routes {
		if r.Source == "" || r.Destination == "" || r.TravelTime <= 0 {
			return fmt.Errorf("routes[%d]: source, destination and a positive travel_time are required", i)
		}
	}
	if p.BusCount <= 0 {
		return fmt.Errorf("bus_count must be positive")
	}
	if len(p.SeatOptions) == 0 {
		return fmt.Errorf("seat_options must not be empty")
	}
	for _, seats := range p.SeatOptions {
		if seats <= 0 {
			return fmt.Errorf("seat_options must be positive, got %d", seats)
		}
	}
	if p.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	if p.PerDayMin <= 0 || p.PerDayMax < p.PerDayMin {
		return fmt.Errorf("per_day_min must be positive and not above per_day_max")
	}
	if p.PerDayMax > len(p.DepartureTimes) {
		return fmt.Errorf("per_day_max (%d) exceeds the %d departure times", p.PerDayMax, len(p.DepartureTimes))
	}
	for _, dep := range p.DepartureTimes {
		if err := validator.ValidateClockTime(dep); err != nil {
			return fmt.Errorf("departure time %q: %w", dep, err)
		}
	}
	return nil
}

// GenerateResult counts what a run created
type GenerateResult struct {
	RoutesCreated    int `json:"routesCreated"`
	BusesCreated     int `json:"busesCreated"`
	SchedulesCreated int `json:"schedulesCreated"`
	SchedulesSkipped int `json:"schedulesSkipped"`
}

// ScheduleGenerator fills the catalog with routes, buses and schedules.
// Running it again only adds what is missing.
type ScheduleGenerator struct {
	buses     BusStore
	routes    RouteStore
	schedules ScheduleStore
	rng       *rand.Rand
	logger    *logrus.Logger
}

// NewScheduleGenerator creates a new ScheduleGenerator. A nil rng is seeded
// from the clock.
func NewScheduleGenerator(buses BusStore, routes RouteStore, schedules ScheduleStore, rng *rand.Rand, logger *logrus.Logger) *ScheduleGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ScheduleGenerator{
		buses:     buses,
		routes:    routes,
		schedules: schedules,
		rng:       rng,
		logger:    logger,
	}
}

// maxBusNumberAttempts bounds retries when a random bus number is taken
const maxBusNumberAttempts = 10

// Generate ensures every route exists, tops the bus pool up to BusCount, then
// creates PerDayMin..PerDayMax departures per route per day for Days days.
// A (bus, route, date, departure) combination that already exists is skipped.
func (g *ScheduleGenerator) Generate(ctx context.Context, plan SeedPlan) (*GenerateResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	result := &GenerateResult{}

	routes, err := g.ensureRoutes(ctx, plan.Routes, result)
	if err != nil {
		return nil, err
	}

	buses, err := g.ensureBuses(ctx, plan, result)
	if err != nil {
		return nil, err
	}

	start := plan.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	start = validator.StartOfDay(start)

	for _, route := range routes {
		for d := 0; d < plan.Days; d++ {
			date := start.AddDate(0, 0, d)
			n := plan.PerDayMin + g.rng.Intn(plan.PerDayMax-plan.PerDayMin+1)

			for _, dep := range g.pickTimes(plan.DepartureTimes, n) {
				bus := buses[g.rng.Intn(len(buses))]

				exists, err := g.schedules.Exists(ctx, bus.ID, route.ID, date, dep)
				if err != nil {
					return nil, fmt.Errorf("failed to check schedule: %w", err)
				}
				if exists {
					result.SchedulesSkipped++
					continue
				}

				arr, err := validator.AddMinutes(dep, route.TravelTime)
				if err != nil {
					return nil, err
				}

				schedule := &models.Schedule{
					ID:            uuid.New(),
					BusID:         bus.ID,
					RouteID:       route.ID,
					JourneyDate:   date,
					DepartureTime: dep,
					ArrivalTime:   arr,
				}
				if err := g.schedules.Create(ctx, schedule); err != nil {
					return nil, fmt.Errorf("failed to create schedule: %w", err)
				}
				result.SchedulesCreated++
			}
		}
	}

	g.logger.WithFields(logrus.Fields{
		"routes_created":    result.RoutesCreated,
		"buses_created":     result.BusesCreated,
		"schedules_created": result.SchedulesCreated,
		"schedules_skipped": result.SchedulesSkipped,
		"days":              plan.Days,
	}).Info("Schedule generation completed")

	return result, nil
}

func (g *ScheduleGenerator) ensureRoutes(ctx context.Context, seeds []RouteSeed, result *GenerateResult) ([]models.Route, error) {
	routes := make([]models.Route, 0, len(seeds))
	for _, seed := range seeds {
		existing, err := g.routes.FindBySourceAndDestination(ctx, seed.Source, seed.Destination)
		if err != nil {
			return nil, fmt.Errorf("failed to look up route %s -> %s: %w", seed.Source, seed.Destination, err)
		}
		if len(existing) > 0 {
			routes = append(routes, existing[0])
			continue
		}

		route := models.Route{
			ID:          uuid.New(),
			Source:      seed.Source,
			Destination: seed.Destination,
			TravelTime:  seed.TravelTime,
		}
		if err := g.routes.Create(ctx, &route); err != nil {
			return nil, fmt.Errorf("failed to create route %s -> %s: %w", seed.Source, seed.Destination, err)
		}
		g.logger.WithField("route", seed.Source+" -> "+seed.Destination).Debug("Created route")
		result.RoutesCreated++
		routes = append(routes, route)
	}
	return routes, nil
}

func (g *ScheduleGenerator) ensureBuses(ctx context.Context, plan SeedPlan, result *GenerateResult) ([]models.Bus, error) {
	buses, err := g.buses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}

	types := []models.BusType{models.BusTypeDeluxe, models.BusTypeSleeper, models.BusTypeStandard}
	for len(buses) < plan.BusCount {
		bus := models.Bus{
			ID:         uuid.New(),
			TotalSeats: plan.SeatOptions[g.rng.Intn(len(plan.SeatOptions))],
			BusType:    types[g.rng.Intn(len(types))],
		}

		var createErr error
		for attempt := 0; attempt < maxBusNumberAttempts; attempt++ {
			bus.BusNumber = fmt.Sprintf("IND-%d", 1000+g.rng.Intn(9000))
			createErr = g.buses.Create(ctx, &bus)
			if !errors.Is(createErr, models.ErrDuplicate) {
				break
			}
		}
		if createErr != nil {
			return nil, fmt.Errorf("failed to create bus: %w", createErr)
		}

		result.BusesCreated++
		buses = append(buses, bus)
	}
	return buses, nil
}

// pickTimes returns n distinct departure times in random order
func (g *ScheduleGenerator) pickTimes(times []string, n int) []string {
	shuffled := append([]string(nil), times...)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
