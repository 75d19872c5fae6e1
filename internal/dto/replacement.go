package dto

// CreateReplacementRequest asks for a replacement on an assignment.
type CreateReplacementRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}

// DecideReplacementRequest approves or refuses a pending request.
type DecideReplacementRequest struct {
	Approve       bool    `json:"approve"`
	ReplacementID *string `json:"replacement_employee_id"`
	Comment       string  `json:"comment"`
}
