package dto

import "github.com/profiremanager/pfm-api/internal/models"

// AvailabilityEntry is one availability window submitted by an employee.
type AvailabilityEntry struct {
	Date      string                    `json:"date" validate:"required"`
	StartTime string                    `json:"start_time"`
	EndTime   string                    `json:"end_time"`
	Status    models.AvailabilityStatus `json:"status" validate:"required"`
}

// ReplaceAvailabilityRequest replaces an employee's declared availability in
// a single write.
type ReplaceAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" validate:"dive"`
}
