package dto

// AutoAssignRequest triggers an automatic assignment run for a week.
type AutoAssignRequest struct {
	WeekStart string `json:"week_start" form:"weekStart" validate:"required"`
	Async     bool   `json:"async" form:"async"`
}

// SlotRef identifies a (date, shift type) slot in run reports.
type SlotRef struct {
	Date          string `json:"date"`
	ShiftTypeID   string `json:"shift_type_id"`
	ShiftTypeName string `json:"shift_type_name"`
}

// RosterRunReport is the terminal report of an assignment run.
type RosterRunReport struct {
	WeekStart          string    `json:"week_start"`
	WeekEnd            string    `json:"week_end"`
	AssignmentsCreated int       `json:"assignments_created"`
	UnfilledSlots      []SlotRef `json:"unfilled_slots"`
	// MonthHours reports cumulative assigned hours per employee for the
	// calendar month of the week start, including hours added by this run.
	MonthHours map[string]int `json:"month_hours"`
}
