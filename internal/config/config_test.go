package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/bus")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := FromEnv()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 6, cfg.Booking.MaxPassengers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BOOKING_MAX_PASSENGERS", "10")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 10, cfg.Database.MaxConnections, "invalid integers fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.Booking.MaxPassengers)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Environment: "development"},
			Database: DatabaseConfig{URL: "postgres://localhost/bus"},
			JWT:      JWTConfig{Secret: "secret", AccessTokenExpiry: time.Hour},
			Booking:  BookingConfig{MaxPassengers: 6},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{"Missing database URL", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"Missing JWT secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET is required"},
		{"Short secret in production", func(c *Config) { c.Server.Environment = "production" }, "at least 32 characters"},
		{"Zero expiry", func(c *Config) { c.JWT.AccessTokenExpiry = 0 }, "JWT_ACCESS_TOKEN_EXPIRY"},
		{"Zero passengers", func(c *Config) { c.Booking.MaxPassengers = 0 }, "BOOKING_MAX_PASSENGERS"},
		{"Admin without password", func(c *Config) { c.Admin.Email = "admin@example.com" }, "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
