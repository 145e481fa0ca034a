package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rishikreddy7/bus-reservation/internal/config"
	"github.com/rishikreddy7/bus-reservation/internal/database"
)

// tables in dependency order, children first
var tables = []string{
	"booking_passengers",
	"bookings",
	"schedules",
	"routes",
	"buses",
	"users",
}

func main() {
	var dbURLFlag string
	var keepUsers bool
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&keepUsers, "keep-users", false, "Leave the users table untouched")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	targets := tables
	if keepUsers {
		targets = tables[:len(tables)-1]
	}

	ctx := context.Background()
	fmt.Println("Connected to database. Truncating tables...")

	query := "TRUNCATE TABLE "
	for i, t := range targets {
		if i > 0 {
			query += ", "
		}
		query += t
	}
	query += " CASCADE"

	if _, err := db.ExecContext(ctx, query); err != nil {
		log.Fatalf("failed to truncate tables: %v", err)
	}

	fmt.Println("Post-clear row counts:")
	for _, t := range tables {
		var count int
		if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+t); err != nil {
			log.Printf("  %s: error: %v", t, err)
			continue
		}
		fmt.Printf("  %s: %d\n", t, count)
	}
}
