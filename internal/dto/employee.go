package dto

import "github.com/profiremanager/pfm-api/internal/models"

// CreateEmployeeRequest is the payload for registering a new employee.
type CreateEmployeeRequest struct {
	FirstName        string                `json:"first_name" validate:"required"`
	LastName         string                `json:"last_name" validate:"required"`
	Email            string                `json:"email" validate:"required,email"`
	Password         string                `json:"password" validate:"required,min=8"`
	Phone            string                `json:"phone"`
	EmergencyContact string                `json:"emergency_contact"`
	Rank             models.Rank           `json:"rank" validate:"required"`
	EmploymentType   models.EmploymentType `json:"employment_type" validate:"required"`
	Role             models.UserRole       `json:"role" validate:"required"`
	EmployeeNumber   string                `json:"employee_number"`
	HireDate         string                `json:"hire_date" validate:"required"`
	MaxWeeklyHours   int                   `json:"max_weekly_hours"`
	TrainingIDs      []string              `json:"training_ids"`
}

// UpdateEmployeeRequest is the payload for modifying an employee. Nil fields
// keep their current value.
type UpdateEmployeeRequest struct {
	FirstName        *string                `json:"first_name"`
	LastName         *string                `json:"last_name"`
	Email            *string                `json:"email" validate:"omitempty,email"`
	Phone            *string                `json:"phone"`
	EmergencyContact *string                `json:"emergency_contact"`
	Rank             *models.Rank           `json:"rank"`
	EmploymentType   *models.EmploymentType `json:"employment_type"`
	Role             *models.UserRole       `json:"role"`
	EmployeeNumber   *string                `json:"employee_number"`
	HireDate         *string                `json:"hire_date"`
	MaxWeeklyHours   *int                   `json:"max_weekly_hours"`
	TrainingIDs      *[]string              `json:"training_ids"`
	Active           *bool                  `json:"active"`
}

// EmployeeListResponse wraps a page of employees.
type EmployeeListResponse struct {
	Employees  []models.Employee  `json:"employees"`
	Pagination *models.Pagination `json:"pagination"`
}
