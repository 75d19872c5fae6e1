package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Weekday names accepted in a shift type's applicable-day set. Lowercase
// English names, matching time.Weekday formatting.
var weekdayNames = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// ValidWeekday reports whether the raw value names a day of the week.
func ValidWeekday(raw string) bool {
	_, ok := weekdayNames[strings.ToLower(raw)]
	return ok
}

// WeekdayName formats a date's weekday the way applicable-day sets store it.
func WeekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// ShiftType defines a schedulable guard shift. Immutable during an
// assignment run.
type ShiftType struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	StartTime       string         `db:"start_time" json:"start_time"`
	EndTime         string         `db:"end_time" json:"end_time"`
	RequiredStaff   int            `db:"required_staff" json:"required_staff"`
	DurationHours   int            `db:"duration_hours" json:"duration_hours"`
	Color           string         `db:"color" json:"color"`
	ApplicableDays  pq.StringArray `db:"applicable_days" json:"applicable_days"`
	OfficerRequired bool           `db:"officer_required" json:"officer_required"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// AppliesTo reports whether the shift type is schedulable on the given date.
// An empty applicable-day set means every day of the week.
func (t ShiftType) AppliesTo(date time.Time) bool {
	if len(t.ApplicableDays) == 0 {
		return true
	}
	day := WeekdayName(date)
	for _, d := range t.ApplicableDays {
		if strings.ToLower(d) == day {
			return true
		}
	}
	return false
}
