package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrEmptyClockTime indicates the time string is empty
	ErrEmptyClockTime = errors.New("time cannot be empty")

	// ErrInvalidClockTime indicates the time is not a zero-padded HH:MM value
	ErrInvalidClockTime = errors.New("time must be in HH:MM 24-hour format")

	// ErrEmptyDate indicates the date string is empty
	ErrEmptyDate = errors.New("date cannot be empty")

	// ErrInvalidDate indicates the date could not be parsed
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

// DateLayout is the wire format of journey dates
const DateLayout = "2006-01-02"

// clockRegex matches zero-padded 24-hour wall-clock times. Padding matters:
// departure times are sorted lexically.
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateClockTime validates a "HH:MM" wall-clock string
func ValidateClockTime(value string) error {
	if value == "" {
		return ErrEmptyClockTime
	}
	if !clockRegex.MatchString(value) {
		return ErrInvalidClockTime
	}
	return nil
}

// ParseJourneyDate parses a calendar date and strips any time-of-day.
// Accepts YYYY-MM-DD and, for clients that send full timestamps, RFC3339.
// The result is midnight UTC of that calendar day.
func ParseJourneyDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyDate
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return StartOfDay(t), nil
}

// StartOfDay returns midnight UTC of the calendar day of t, as seen in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMinutes adds minutes to a "HH:MM" time, wrapping past midnight
func AddMinutes(clock string, minutes int) (string, error) {
	if err := ValidateClockTime(clock); err != nil {
		return "", err
	}

	hh, _ := strconv.Atoi(clock[:2])
	mm, _ := strconv.Atoi(clock[3:])

	total := ((hh*60+mm+minutes)%(24*60) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// NormalizeCity trims a city name and collapses inner runs of whitespace.
// Case is preserved; city matching is exact.
func NormalizeCity(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
