package database

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateTicketID generates a public ticket identifier.
// Format: TKT-YYYYMMDDHHMMSS-XXXXXXXX (8 hex chars)
// Example: TKT-20240315080000-A1B2C3D4
// Uniqueness is enforced by uq_bookings_ticket_id, not by a lookup here.
func GenerateTicketID() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomStr := strings.ToUpper(hex.EncodeToString(randomBytes))

	return fmt.Sprintf("TKT-%s-%s", time.Now().UTC().Format("20060102150405"), randomStr), nil
}
