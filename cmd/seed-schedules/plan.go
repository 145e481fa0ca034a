package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rishikreddy7/bus-reservation/internal/services"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type options struct {
	planFile    string
	databaseURL string
	days        int
	startDate   string
	seed        int64
	migrate     bool
	verbose     bool
}

func parseFlags(args []string) (*options, error) {
	var opts options

	flagSet := pflag.NewFlagSet("seed-schedules", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.planFile, "plan", "p", "", "YAML seed plan (default: built-in city pairs)")
	flagSet.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flagSet.IntVar(&opts.days, "days", 0, "number of days to schedule, overrides the plan")
	flagSet.StringVar(&opts.startDate, "start-date", "", "first journey date as YYYY-MM-DD (default: today)")
	flagSet.Int64Var(&opts.seed, "seed", 0, "random seed for reproducible runs")
	flagSet.BoolVar(&opts.migrate, "migrate", false, "apply the database schema first")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every created route")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return &opts, nil
}

// loadPlan reads a seed plan from path. Fields the file leaves out keep the
// built-in defaults. An empty path returns the defaults.
func loadPlan(path string) (services.SeedPlan, error) {
	plan := services.DefaultSeedPlan()
	if path == "" {
		return plan, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("failed to read plan: %w", err)
	}

	return decodePlan(data, plan)
}

func decodePlan(data []byte, plan services.SeedPlan) (services.SeedPlan, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return plan, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return plan, fmt.Errorf("invalid plan: %w", err)
	}
	return plan, nil
}
