package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// BusRepository handles database operations for buses
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

// Create inserts a new bus. A taken bus number returns models.ErrDuplicate.
func (r *BusRepository) Create(ctx context.Context, bus *models.Bus) error {
	query := `
		INSERT INTO buses (id, bus_number, total_seats, bus_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		bus.ID, bus.BusNumber, bus.TotalSeats, bus.BusType,
	).Scan(&bus.CreatedAt)

	return translateError(err, "failed to create bus")
}

// GetByID retrieves a bus by ID
func (r *BusRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bus, error) {
	query := `
		SELECT id, bus_number, total_seats, bus_type, created_at
		FROM buses
		WHERE id = $1
	`

	bus := &models.Bus{}
	if err := r.db.GetContext(ctx, bus, query, id); err != nil {
		return nil, translateError(err, "failed to get bus")
	}
	return bus, nil
}

// GetByNumber retrieves a bus by its unique bus number
func (r *BusRepository) GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error) {
	query := `
		SELECT id, bus_number, total_seats, bus_type, created_at
		FROM buses
		WHERE bus_number = $1
	`

	bus := &models.Bus{}
	if err := r.db.GetContext(ctx, bus, query, busNumber); err != nil {
		return nil, translateError(err, "failed to get bus by number")
	}
	return bus, nil
}

// List retrieves all buses
func (r *BusRepository) List(ctx context.Context) ([]models.Bus, error) {
	query := `
		SELECT id, bus_number, total_seats, bus_type, created_at
		FROM buses
		ORDER BY created_at DESC
	`

	buses := []models.Bus{}
	if err := r.db.SelectContext(ctx, &buses, query); err != nil {
		return nil, translateError(err, "failed to list buses")
	}
	return buses, nil
}
