// Package servicetest provides in-memory stores for service and handler tests.
// They follow the same contracts as the Postgres repositories, including the
// rejection of a second confirmed holder of a seat.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// DB holds every table in memory
type DB struct {
	mu        sync.RWMutex
	buses     map[uuid.UUID]models.Bus
	routes    map[uuid.UUID]models.Route
	schedules map[uuid.UUID]models.Schedule
	bookings  []*models.Booking
	users     map[uuid.UUID]models.User
	failures  map[string]error
	clock     time.Time

	// BeforeBookingInsert runs inside Create before the seat check, without
	// the lock held. Tests use it to slip in a competing booking.
	BeforeBookingInsert func()
}

// NewDB creates an empty in-memory database
func NewDB() *DB {
	return &DB{
		buses:     make(map[uuid.UUID]models.Bus),
		routes:    make(map[uuid.UUID]models.Route),
		schedules: make(map[uuid.UUID]models.Schedule),
		users:     make(map[uuid.UUID]models.User),
		failures:  make(map[string]error),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// FailOn makes the named operation, such as "bookings.Create", return err
func (db *DB) FailOn(op string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failures[op] = err
}

// Buses returns the bus store
func (db *DB) Buses() *BusStore { return &BusStore{db: db} }

// Routes returns the route store
func (db *DB) Routes() *RouteStore { return &RouteStore{db: db} }

// Schedules returns the schedule store
func (db *DB) Schedules() *ScheduleStore { return &ScheduleStore{db: db} }

// Bookings returns the booking store
func (db *DB) Bookings() *BookingStore { return &BookingStore{db: db} }

// Users returns the user store
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// tick returns a strictly increasing timestamp. Caller holds the lock.
func (db *DB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// failure returns the injected error for op. Caller holds the lock.
func (db *DB) failure(op string) error {
	return db.failures[op]
}

// scheduleDetail resolves bus and route. Caller holds the lock.
func (db *DB) scheduleDetail(s models.Schedule) (models.ScheduleDetail, bool) {
	bus, ok := db.buses[s.BusID]
	if !ok {
		return models.ScheduleDetail{}, false
	}
	route, ok := db.routes[s.RouteID]
	if !ok {
		return models.ScheduleDetail{}, false
	}
	return models.ScheduleDetail{Schedule: s, Bus: bus, Route: route}, true
}

// BusStore is the in-memory bus store
type BusStore struct{ db *DB }

func (s *BusStore) Create(ctx context.Context, bus *models.Bus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("buses.Create"); err != nil {
		return err
	}
	for _, b := range s.db.buses {
		if b.BusNumber == bus.BusNumber {
			return models.ErrDuplicate
		}
	}
	bus.CreatedAt = s.db.tick()
	s.db.buses[bus.ID] = *bus
	return nil
}

func (s *BusStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Bus, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	bus, ok := s.db.buses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &bus, nil
}

func (s *BusStore) GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("buses.GetByNumber"); err != nil {
		return nil, err
	}
	for _, b := range s.db.buses {
		if b.BusNumber == busNumber {
			bus := b
			return &bus, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *BusStore) List(ctx context.Context) ([]models.Bus, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	buses := make([]models.Bus, 0, len(s.db.buses))
	for _, b := range s.db.buses {
		buses = append(buses, b)
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i].CreatedAt.After(buses[j].CreatedAt) })
	return buses, nil
}

// RouteStore is the in-memory route store
type RouteStore struct{ db *DB }

func (s *RouteStore) Create(ctx context.Context, route *models.Route) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	route.CreatedAt = s.db.tick()
	s.db.routes[route.ID] = *route
	return nil
}

func (s *RouteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	route, ok := s.db.routes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &route, nil
}

func (s *RouteStore) FindBySourceAndDestination(ctx context.Context, source, destination string) ([]models.Route, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("routes.FindBySourceAndDestination"); err != nil {
		return nil, err
	}
	routes := []models.Route{}
	for _, r := range s.db.routes {
		if r.Source == source && r.Destination == destination {
			routes = append(routes, r)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].CreatedAt.Before(routes[j].CreatedAt) })
	return routes, nil
}

func (s *RouteStore) List(ctx context.Context) ([]models.Route, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	routes := make([]models.Route, 0, len(s.db.routes))
	for _, r := range s.db.routes {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Source != routes[j].Source {
			return routes[i].Source < routes[j].Source
		}
		return routes[i].Destination < routes[j].Destination
	})
	return routes, nil
}

// ScheduleStore is the in-memory schedule store
type ScheduleStore struct{ db *DB }

func (s *ScheduleStore) Create(ctx context.Context, schedule *models.Schedule) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	schedule.CreatedAt = s.db.tick()
	s.db.schedules[schedule.ID] = *schedule
	return nil
}

func (s *ScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	schedule, ok := s.db.schedules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &schedule, nil
}

func (s *ScheduleStore) GetDetail(ctx context.Context, id uuid.UUID) (*models.ScheduleDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("schedules.GetDetail"); err != nil {
		return nil, err
	}
	schedule, ok := s.db.schedules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	detail, ok := s.db.scheduleDetail(schedule)
	if !ok {
		return nil, models.ErrNotFound
	}
	return &detail, nil
}

func (s *ScheduleStore) ListDetails(ctx context.Context) ([]models.ScheduleDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	details := []models.ScheduleDetail{}
	for _, sch := range s.db.schedules {
		if d, ok := s.db.scheduleDetail(sch); ok {
			details = append(details, d)
		}
	}
	sort.Slice(details, func(i, j int) bool {
		if !details[i].JourneyDate.Equal(details[j].JourneyDate) {
			return details[i].JourneyDate.Before(details[j].JourneyDate)
		}
		return details[i].DepartureTime < details[j].DepartureTime
	})
	return details, nil
}

func (s *ScheduleStore) ListByRoutesAndDateRange(ctx context.Context, routeIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(routeIDs))
	for _, id := range routeIDs {
		wanted[id] = true
	}

	details := []models.ScheduleDetail{}
	for _, sch := range s.db.schedules {
		if !wanted[sch.RouteID] || sch.JourneyDate.Before(from) || !sch.JourneyDate.Before(to) {
			continue
		}
		if d, ok := s.db.scheduleDetail(sch); ok {
			details = append(details, d)
		}
	}
	return details, nil
}

func (s *ScheduleStore) Exists(ctx context.Context, busID, routeID uuid.UUID, journeyDate time.Time, departure string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, sch := range s.db.schedules {
		if sch.BusID == busID && sch.RouteID == routeID && sch.JourneyDate.Equal(journeyDate) && sch.DepartureTime == departure {
			return true, nil
		}
	}
	return false, nil
}

// BookingStore is the in-memory booking store
type BookingStore struct{ db *DB }

func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	if hook := s.db.BeforeBookingInsert; hook != nil {
		hook()
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("bookings.Create"); err != nil {
		return err
	}

	for _, b := range s.db.bookings {
		if b.TicketID == booking.TicketID {
			return models.ErrDuplicate
		}
		if b.ScheduleID != booking.ScheduleID || b.IsCancelled() {
			continue
		}
		for _, held := range b.Passengers {
			for _, p := range booking.Passengers {
				if held.SeatNumber == p.SeatNumber {
					return &models.SeatConflictError{Seat: p.SeatNumber}
				}
			}
		}
	}

	booking.BookingTime = s.db.tick()
	stored := *booking
	stored.Passengers = append([]models.Passenger(nil), booking.Passengers...)
	s.db.bookings = append(s.db.bookings, &stored)
	return nil
}

func (s *BookingStore) BookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("bookings.BookedSeats"); err != nil {
		return nil, err
	}
	seats := []int{}
	for _, b := range s.db.bookings {
		if b.ScheduleID != scheduleID || b.IsCancelled() {
			continue
		}
		seats = append(seats, b.SeatNumbers()...)
	}
	sort.Ints(seats)
	return seats, nil
}

func (s *BookingStore) GetByTicketID(ctx context.Context, ticketID string) (*models.Booking, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, b := range s.db.bookings {
		if b.TicketID == ticketID {
			out := *b
			out.Passengers = append([]models.Passenger(nil), b.Passengers...)
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *BookingStore) GetDetailByTicketID(ctx context.Context, ticketID string) (*models.BookingDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, b := range s.db.bookings {
		if b.TicketID == ticketID {
			detail, ok := s.detail(b)
			if !ok {
				return nil, models.ErrNotFound
			}
			return &detail, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *BookingStore) ListDetailsByUser(ctx context.Context, userID uuid.UUID) ([]models.BookingDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	details := []models.BookingDetail{}
	for i := len(s.db.bookings) - 1; i >= 0; i-- {
		b := s.db.bookings[i]
		if b.UserID != userID {
			continue
		}
		if detail, ok := s.detail(b); ok {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("bookings.UpdateStatus"); err != nil {
		return err
	}
	for _, b := range s.db.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

// detail joins a booking with its schedule and owner. Caller holds the lock.
func (s *BookingStore) detail(b *models.Booking) (models.BookingDetail, bool) {
	schedule, ok := s.db.schedules[b.ScheduleID]
	if !ok {
		return models.BookingDetail{}, false
	}
	scheduleDetail, ok := s.db.scheduleDetail(schedule)
	if !ok {
		return models.BookingDetail{}, false
	}

	booking := *b
	booking.Passengers = append([]models.Passenger(nil), b.Passengers...)
	detail := models.BookingDetail{Booking: booking, Schedule: scheduleDetail}
	if u, ok := s.db.users[b.UserID]; ok {
		u.PasswordHash = ""
		detail.User = &u
	}
	return detail, true
}

// UserStore is the in-memory user store
type UserStore struct{ db *DB }

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return models.ErrDuplicate
		}
	}
	user.CreatedAt = s.db.tick()
	s.db.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	user, ok := s.db.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}
