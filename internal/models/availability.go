package models

import (
	"fmt"
	"time"
)

// AvailabilityStatus classifies an availability window.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
	AvailabilityPreferred   AvailabilityStatus = "PREFERRED"
)

// Valid reports whether the status belongs to the closed set.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityPreferred:
		return true
	}
	return false
}

// ParseAvailabilityStatus validates a raw status value.
func ParseAvailabilityStatus(raw string) (AvailabilityStatus, error) {
	s := AvailabilityStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown availability status %q", raw)
	}
	return s, nil
}

// Availability declares a part-time employee's window on an exact date. Only
// AVAILABLE records on the exact slot date matter to the assignment engine.
type Availability struct {
	ID         string             `db:"id" json:"id"`
	EmployeeID string             `db:"employee_id" json:"employee_id"`
	Date       time.Time          `db:"date" json:"date"`
	StartTime  string             `db:"start_time" json:"start_time"`
	EndTime    string             `db:"end_time" json:"end_time"`
	Status     AvailabilityStatus `db:"status" json:"status"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}
