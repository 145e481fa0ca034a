package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new route
func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	query := `
		INSERT INTO routes (id, source, destination, travel_time_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		route.ID, route.Source, route.Destination, route.TravelTime,
	).Scan(&route.CreatedAt)

	return translateError(err, "failed to create route")
}

// GetByID retrieves a route by ID
func (r *RouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	query := `
		SELECT id, source, destination, travel_time_minutes, created_at
		FROM routes
		WHERE id = $1
	`

	route := &models.Route{}
	if err := r.db.GetContext(ctx, route, query, id); err != nil {
		return nil, translateError(err, "failed to get route")
	}
	return route, nil
}

// FindBySourceAndDestination returns routes whose endpoints match exactly.
// Matching is case-sensitive.
func (r *RouteRepository) FindBySourceAndDestination(ctx context.Context, source, destination string) ([]models.Route, error) {
	query := `
		SELECT id, source, destination, travel_time_minutes, created_at
		FROM routes
		WHERE source = $1 AND destination = $2
	`

	routes := []models.Route{}
	if err := r.db.SelectContext(ctx, &routes, query, source, destination); err != nil {
		return nil, translateError(err, "failed to find routes")
	}
	return routes, nil
}

// List retrieves all routes
func (r *RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	query := `
		SELECT id, source, destination, travel_time_minutes, created_at
		FROM routes
		ORDER BY source, destination
	`

	routes := []models.Route{}
	if err := r.db.SelectContext(ctx, &routes, query); err != nil {
		return nil, translateError(err, "failed to list routes")
	}
	return routes, nil
}
