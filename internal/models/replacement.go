package models

import "time"

// ReplacementStatus tracks the lifecycle of a replacement request.
type ReplacementStatus string

const (
	ReplacementPending  ReplacementStatus = "PENDING"
	ReplacementApproved ReplacementStatus = "APPROVED"
	ReplacementRefused  ReplacementStatus = "REFUSED"
)

// ReplacementRequest asks for another employee to cover an assigned shift.
// Downstream consumer of Assignment records; the engine never reads these.
type ReplacementRequest struct {
	ID            string            `db:"id" json:"id"`
	AssignmentID  string            `db:"assignment_id" json:"assignment_id"`
	RequesterID   string            `db:"requester_id" json:"requester_id"`
	ShiftTypeID   string            `db:"shift_type_id" json:"shift_type_id"`
	Date          time.Time         `db:"date" json:"date"`
	Reason        string            `db:"reason" json:"reason"`
	Status        ReplacementStatus `db:"status" json:"status"`
	ReplacementID *string           `db:"replacement_id" json:"replacement_id,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}
