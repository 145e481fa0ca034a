package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// ScheduleRepository handles database operations for schedules
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// scheduleDetailColumns selects a schedule joined with its bus and route
const scheduleDetailColumns = `
	s.id, s.bus_id, s.route_id, s.journey_date, s.departure_time, s.arrival_time, s.created_at,
	b.bus_number, b.total_seats, b.bus_type, b.created_at AS bus_created_at,
	r.source, r.destination, r.travel_time_minutes, r.created_at AS route_created_at
`

// scheduleDetailRow is the flat shape of one scheduleDetailColumns row
type scheduleDetailRow struct {
	models.Schedule
	BusNumber      string         `db:"bus_number"`
	TotalSeats     int            `db:"total_seats"`
	BusType        models.BusType `db:"bus_type"`
	BusCreatedAt   time.Time      `db:"bus_created_at"`
	Source         string         `db:"source"`
	Destination    string         `db:"destination"`
	TravelTime     int            `db:"travel_time_minutes"`
	RouteCreatedAt time.Time      `db:"route_created_at"`
}

func (row *scheduleDetailRow) toDetail() models.ScheduleDetail {
	return models.ScheduleDetail{
		Schedule: row.Schedule,
		Bus: models.Bus{
			ID:         row.BusID,
			BusNumber:  row.BusNumber,
			TotalSeats: row.TotalSeats,
			BusType:    row.BusType,
			CreatedAt:  row.BusCreatedAt,
		},
		Route: models.Route{
			ID:          row.RouteID,
			Source:      row.Source,
			Destination: row.Destination,
			TravelTime:  row.TravelTime,
			CreatedAt:   row.RouteCreatedAt,
		},
	}
}

// Create inserts a new schedule
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (id, bus_id, route_id, journey_date, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		schedule.ID, schedule.BusID, schedule.RouteID,
		schedule.JourneyDate, schedule.DepartureTime, schedule.ArrivalTime,
	).Scan(&schedule.CreatedAt)

	return translateError(err, "failed to create schedule")
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	query := `
		SELECT id, bus_id, route_id, journey_date, departure_time, arrival_time, created_at
		FROM schedules
		WHERE id = $1
	`

	schedule := &models.Schedule{}
	if err := r.db.GetContext(ctx, schedule, query, id); err != nil {
		return nil, translateError(err, "failed to get schedule")
	}
	return schedule, nil
}

// GetDetail retrieves a schedule with its bus and route
func (r *ScheduleRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.ScheduleDetail, error) {
	query := `SELECT ` + scheduleDetailColumns + `
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		JOIN routes r ON r.id = s.route_id
		WHERE s.id = $1
	`

	var row scheduleDetailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, translateError(err, "failed to get schedule detail")
	}
	detail := row.toDetail()
	return &detail, nil
}

// ListDetails retrieves every schedule with its bus and route
func (r *ScheduleRepository) ListDetails(ctx context.Context) ([]models.ScheduleDetail, error) {
	query := `SELECT ` + scheduleDetailColumns + `
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		JOIN routes r ON r.id = s.route_id
		ORDER BY s.journey_date, s.departure_time
	`

	var rows []scheduleDetailRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, translateError(err, "failed to list schedules")
	}
	return toDetails(rows), nil
}

// ListByRoutesAndDateRange returns schedules on any of routeIDs whose journey
// date falls in [from, to)
func (r *ScheduleRepository) ListByRoutesAndDateRange(ctx context.Context, routeIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleDetail, error) {
	if len(routeIDs) == 0 {
		return []models.ScheduleDetail{}, nil
	}

	query := `SELECT ` + scheduleDetailColumns + `
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		JOIN routes r ON r.id = s.route_id
		WHERE s.route_id = ANY($1::uuid[])
		  AND s.journey_date >= $2
		  AND s.journey_date < $3
		ORDER BY s.departure_time
	`

	var rows []scheduleDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(routeIDs)), from, to); err != nil {
		return nil, translateError(err, "failed to list schedules by route")
	}
	return toDetails(rows), nil
}

// Exists reports whether the bus already runs the route on that date at
// that departure time
func (r *ScheduleRepository) Exists(ctx context.Context, busID, routeID uuid.UUID, journeyDate time.Time, departure string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE bus_id = $1 AND route_id = $2 AND journey_date = $3 AND departure_time = $4
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, busID, routeID, journeyDate, departure); err != nil {
		return false, translateError(err, "failed to check schedule")
	}
	return exists, nil
}

func toDetails(rows []scheduleDetailRow) []models.ScheduleDetail {
	details := make([]models.ScheduleDetail, len(rows))
	for i := range rows {
		details[i] = rows[i].toDetail()
	}
	return details
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
