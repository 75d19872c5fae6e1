package dto

import "github.com/profiremanager/pfm-api/internal/models"

// ManualAssignRequest creates a manual assignment for a slot.
type ManualAssignRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	ShiftTypeID string `json:"shift_type_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

// WeekPlanningResponse is the weekly roster view: every assignment of the
// week plus the shift types needed to render it.
type WeekPlanningResponse struct {
	WeekStart   string                    `json:"week_start"`
	WeekEnd     string                    `json:"week_end"`
	ShiftTypes  []models.ShiftType        `json:"shift_types"`
	Assignments []models.AssignmentDetail `json:"assignments"`
}
