// Command seed-schedules fills the catalog with routes, buses and two to
// three daily departures per route. Running it again only adds what is
// missing.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rishikreddy7/bus-reservation/internal/config"
	"github.com/rishikreddy7/bus-reservation/internal/database"
	"github.com/rishikreddy7/bus-reservation/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	plan, err := loadPlan(opts.planFile)
	if err != nil {
		return err
	}
	if opts.days > 0 {
		plan.Days = opts.days
	}
	if opts.startDate != "" {
		start, err := time.Parse("2006-01-02", opts.startDate)
		if err != nil {
			return fmt.Errorf("--start-date: %w", err)
		}
		plan.StartDate = start
	}

	dbURL := opts.databaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set and --database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if opts.migrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}

	generator := services.NewScheduleGenerator(
		database.NewBusRepository(db),
		database.NewRouteRepository(db),
		database.NewScheduleRepository(db),
		rng,
		logger,
	)

	result, err := generator.Generate(ctx, plan)
	if err != nil {
		return err
	}

	fmt.Printf("Routes created:    %d\n", result.RoutesCreated)
	fmt.Printf("Buses created:     %d\n", result.BusesCreated)
	fmt.Printf("Schedules created: %d\n", result.SchedulesCreated)
	fmt.Printf("Schedules skipped: %d\n", result.SchedulesSkipped)
	return nil
}
