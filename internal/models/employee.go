package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Rank represents a firefighter rank. The set is closed and validated at the
// model boundary so rank checks never fall back to raw string comparison.
type Rank string

const (
	RankFirefighter Rank = "FIREFIGHTER"
	RankLieutenant  Rank = "LIEUTENANT"
	RankCaptain     Rank = "CAPTAIN"
	RankDirector    Rank = "DIRECTOR"
)

var officerRanks = map[Rank]struct{}{
	RankCaptain:    {},
	RankLieutenant: {},
	RankDirector:   {},
}

// IsOfficer reports whether the rank satisfies an officer-required shift.
func (r Rank) IsOfficer() bool {
	_, ok := officerRanks[r]
	return ok
}

// Valid reports whether the rank belongs to the closed set.
func (r Rank) Valid() bool {
	switch r {
	case RankFirefighter, RankLieutenant, RankCaptain, RankDirector:
		return true
	}
	return false
}

// ParseRank validates a raw rank value.
func ParseRank(raw string) (Rank, error) {
	r := Rank(raw)
	if !r.Valid() {
		return "", fmt.Errorf("unknown rank %q", raw)
	}
	return r, nil
}

// EmploymentType distinguishes full-time staff (fixed roster, never
// auto-assigned) from part-time staff (assigned from availabilities).
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
)

// Valid reports whether the employment type belongs to the closed set.
func (t EmploymentType) Valid() bool {
	return t == EmploymentFullTime || t == EmploymentPartTime
}

// ParseEmploymentType validates a raw employment type value.
func ParseEmploymentType(raw string) (EmploymentType, error) {
	t := EmploymentType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("unknown employment type %q", raw)
	}
	return t, nil
}

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleSupervisor UserRole = "SUPERVISOR"
	RoleEmployee   UserRole = "EMPLOYEE"
)

// Valid reports whether the role belongs to the closed set.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleEmployee
}

// Employee represents a member of the fire station personnel. The same record
// backs both authentication and roster assignment.
type Employee struct {
	ID               string         `db:"id" json:"id"`
	FirstName        string         `db:"first_name" json:"first_name"`
	LastName         string         `db:"last_name" json:"last_name"`
	Email            string         `db:"email" json:"email"`
	PasswordHash     string         `db:"password_hash" json:"-"`
	Phone            string         `db:"phone" json:"phone"`
	EmergencyContact string         `db:"emergency_contact" json:"emergency_contact"`
	Rank             Rank           `db:"rank" json:"rank"`
	EmploymentType   EmploymentType `db:"employment_type" json:"employment_type"`
	Role             UserRole       `db:"role" json:"role"`
	Active           bool           `db:"active" json:"active"`
	EmployeeNumber   string         `db:"employee_number" json:"employee_number"`
	HireDate         time.Time      `db:"hire_date" json:"hire_date"`
	MaxWeeklyHours   int            `db:"max_weekly_hours" json:"max_weekly_hours"`
	TrainingIDs      pq.StringArray `db:"training_ids" json:"training_ids"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name used in exports and logs.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeFilter captures filtering options for listing employees.
type EmployeeFilter struct {
	Search         string
	Rank           *Rank
	EmploymentType *EmploymentType
	Active         *bool
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
