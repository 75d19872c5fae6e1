package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, int, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, emp *models.Employee) error
	Update(ctx context.Context, emp *models.Employee) error
	Deactivate(ctx context.Context, id string) error
}

// EmployeeService manages the personnel registry.
type EmployeeService struct {
	repo      employeeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(repo employeeRepository, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, validator: validate, logger: logger}
}

// List returns a filtered page of employees.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter) (*dto.EmployeeListResponse, error) {
	employees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	return &dto.EmployeeListResponse{
		Employees: employees,
		Pagination: &models.Pagination{
			Page:       page,
			PageSize:   size,
			TotalCount: total,
		},
	}, nil
}

// Get loads a single employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return emp, nil
}

// Create registers a new employee with a hashed password.
func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	if !req.Rank.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown rank")
	}
	if !req.EmploymentType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown employment type")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	hireDate, err := time.Parse(models.DateLayout, req.HireDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid hire date, expected YYYY-MM-DD")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	emp := &models.Employee{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		Rank:             req.Rank,
		EmploymentType:   req.EmploymentType,
		Role:             req.Role,
		Active:           true,
		EmployeeNumber:   req.EmployeeNumber,
		HireDate:         hireDate,
		MaxWeeklyHours:   req.MaxWeeklyHours,
		TrainingIDs:      pq.StringArray(req.TrainingIDs),
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}

	s.logger.Info("employee created", zap.String("employee_id", emp.ID), zap.String("rank", string(emp.Rank)))
	return emp, nil
}

// Update applies a partial update to an employee.
func (s *EmployeeService) Update(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}

	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != emp.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		emp.Email = *req.Email
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.EmergencyContact != nil {
		emp.EmergencyContact = *req.EmergencyContact
	}
	if req.Rank != nil {
		if !req.Rank.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown rank")
		}
		emp.Rank = *req.Rank
	}
	if req.EmploymentType != nil {
		if !req.EmploymentType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown employment type")
		}
		emp.EmploymentType = *req.EmploymentType
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
		}
		emp.Role = *req.Role
	}
	if req.EmployeeNumber != nil {
		emp.EmployeeNumber = *req.EmployeeNumber
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse(models.DateLayout, *req.HireDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid hire date, expected YYYY-MM-DD")
		}
		emp.HireDate = hireDate
	}
	if req.MaxWeeklyHours != nil {
		emp.MaxWeeklyHours = *req.MaxWeeklyHours
	}
	if req.TrainingIDs != nil {
		emp.TrainingIDs = pq.StringArray(*req.TrainingIDs)
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update employee")
	}
	return emp, nil
}

// Deactivate retires an employee from scheduling without losing history.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate employee")
	}
	s.logger.Info("employee deactivated", zap.String("employee_id", id))
	return nil
}
