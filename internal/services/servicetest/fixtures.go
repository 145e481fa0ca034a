package servicetest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// Trip is a seeded bus, route and schedule
type Trip struct {
	Bus      models.Bus
	Route    models.Route
	Schedule models.Schedule
}

// AddTrip seeds a route, a bus and one schedule on that route and day
func (db *DB) AddTrip(source, destination string, travelTime, totalSeats int, busType models.BusType, day time.Time, departure, arrival string) Trip {
	ctx := context.Background()

	route := models.Route{ID: uuid.New(), Source: source, Destination: destination, TravelTime: travelTime}
	_ = db.Routes().Create(ctx, &route)

	bus := models.Bus{ID: uuid.New(), BusNumber: "BUS-" + uuid.NewString()[:8], TotalSeats: totalSeats, BusType: busType}
	_ = db.Buses().Create(ctx, &bus)

	schedule := db.AddSchedule(bus.ID, route.ID, day, departure, arrival)
	return Trip{Bus: bus, Route: route, Schedule: schedule}
}

// AddSchedule seeds one more schedule for an existing bus and route
func (db *DB) AddSchedule(busID, routeID uuid.UUID, journeyDate time.Time, departure, arrival string) models.Schedule {
	schedule := models.Schedule{
		ID:            uuid.New(),
		BusID:         busID,
		RouteID:       routeID,
		JourneyDate:   journeyDate,
		DepartureTime: departure,
		ArrivalTime:   arrival,
	}
	_ = db.Schedules().Create(context.Background(), &schedule)
	return schedule
}

// AddUser seeds an account with the given role
func (db *DB) AddUser(name, email string, role models.Role) models.User {
	user := models.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: "x", Role: role}
	_ = db.Users().Create(context.Background(), &user)
	return user
}

// BookingCount returns how many bookings are stored
func (db *DB) BookingCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.bookings)
}
