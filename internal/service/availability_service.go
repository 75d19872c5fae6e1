package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type availabilityRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]models.Availability, error)
	ReplaceForEmployee(ctx context.Context, employeeID string, items []models.Availability) error
}

type availabilityEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

// AvailabilityService manages declared availability windows.
type AvailabilityService struct {
	repo      availabilityRepository
	employees availabilityEmployeeReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(repo availabilityRepository, employees availabilityEmployeeReader, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, employees: employees, validator: validate, logger: logger}
}

// ListByEmployee returns an employee's declared availability.
func (s *AvailabilityService) ListByEmployee(ctx context.Context, employeeID string) ([]models.Availability, error) {
	items, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availabilities")
	}
	return items, nil
}

// Replace swaps an employee's declared availability for the submitted set in
// a single write.
func (s *AvailabilityService) Replace(ctx context.Context, employeeID string, req dto.ReplaceAvailabilityRequest) ([]models.Availability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}

	items := make([]models.Availability, 0, len(req.Entries))
	for _, entry := range req.Entries {
		date, err := time.Parse(models.DateLayout, entry.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid availability date, expected YYYY-MM-DD")
		}
		if !entry.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown availability status")
		}
		items = append(items, models.Availability{
			EmployeeID: employeeID,
			Date:       date,
			StartTime:  entry.StartTime,
			EndTime:    entry.EndTime,
			Status:     entry.Status,
		})
	}

	if err := s.repo.ReplaceForEmployee(ctx, employeeID, items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace availabilities")
	}

	s.logger.Info("availability replaced",
		zap.String("employee_id", employeeID),
		zap.Int("entries", len(items)),
	)
	return items, nil
}
