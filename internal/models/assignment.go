package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for roster dates.
const DateLayout = "2006-01-02"

// AssignmentOrigin records whether a human or the engine created an
// assignment. Manual assignments are immune to automatic overwrite.
type AssignmentOrigin string

const (
	OriginManual AssignmentOrigin = "MANUAL"
	OriginAuto   AssignmentOrigin = "AUTO"
)

// Valid reports whether the origin belongs to the closed set.
func (o AssignmentOrigin) Valid() bool {
	return o == OriginManual || o == OriginAuto
}

// AssignmentStatus tracks the lifecycle of an assignment.
type AssignmentStatus string

const (
	AssignmentPlanned              AssignmentStatus = "PLANNED"
	AssignmentConfirmed            AssignmentStatus = "CONFIRMED"
	AssignmentReplacementRequested AssignmentStatus = "REPLACEMENT_REQUESTED"
)

// Assignment binds an employee to a shift type on a date. At most one
// assignment may exist per (employee, date).
type Assignment struct {
	ID          string           `db:"id" json:"id"`
	EmployeeID  string           `db:"employee_id" json:"employee_id"`
	ShiftTypeID string           `db:"shift_type_id" json:"shift_type_id"`
	Date        time.Time        `db:"date" json:"date"`
	Status      AssignmentStatus `db:"status" json:"status"`
	Origin      AssignmentOrigin `db:"origin" json:"origin"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// DateKey returns the assignment date in DateLayout, the key used for
// same-day uniqueness checks.
func (a Assignment) DateKey() string {
	return a.Date.Format(DateLayout)
}

// SlotKey identifies the (date, shift type) slot the assignment covers.
func (a Assignment) SlotKey() string {
	return fmt.Sprintf("%s|%s", a.DateKey(), a.ShiftTypeID)
}

// AssignmentDetail joins an assignment with display fields for roster views.
type AssignmentDetail struct {
	Assignment
	EmployeeName  string `db:"employee_name" json:"employee_name"`
	EmployeeRank  Rank   `db:"employee_rank" json:"employee_rank"`
	ShiftTypeName string `db:"shift_type_name" json:"shift_type_name"`
}

// AssignmentFilter captures query options for listing assignments.
type AssignmentFilter struct {
	EmployeeID  string
	ShiftTypeID string
	From        time.Time
	To          time.Time
	Origin      *AssignmentOrigin
}
