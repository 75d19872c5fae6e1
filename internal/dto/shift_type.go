package dto

// CreateShiftTypeRequest defines a new shift type.
type CreateShiftTypeRequest struct {
	Name            string   `json:"name" validate:"required"`
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	RequiredStaff   int      `json:"required_staff" validate:"min=0"`
	DurationHours   int      `json:"duration_hours" validate:"required,min=1"`
	ApplicableDays  []string `json:"applicable_days" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	OfficerRequired bool     `json:"officer_required"`
	Color           string   `json:"color"`
}

// UpdateShiftTypeRequest modifies a shift type. Nil fields keep their
// current value.
type UpdateShiftTypeRequest struct {
	Name            *string   `json:"name"`
	StartTime       *string   `json:"start_time"`
	EndTime         *string   `json:"end_time"`
	RequiredStaff   *int      `json:"required_staff"`
	DurationHours   *int      `json:"duration_hours" validate:"omitempty,min=1"`
	ApplicableDays  *[]string `json:"applicable_days" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	OfficerRequired *bool     `json:"officer_required"`
	Color           *string   `json:"color"`
}
