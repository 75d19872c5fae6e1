package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type planningAssignmentRepository interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error)
	ListDetailByDateRange(ctx context.Context, from, to time.Time) ([]models.AssignmentDetail, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, item *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

type planningEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

type planningShiftTypeReader interface {
	List(ctx context.Context) ([]models.ShiftType, error)
	FindByID(ctx context.Context, id string) (*models.ShiftType, error)
}

// PlanningService serves the weekly roster view and manual assignment
// operations. Manual assignments always win over the engine: once placed,
// the engine skips their slot.
type PlanningService struct {
	assignments planningAssignmentRepository
	employees   planningEmployeeReader
	shiftTypes  planningShiftTypeReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewPlanningService constructs a PlanningService.
func NewPlanningService(
	assignments planningAssignmentRepository,
	employees planningEmployeeReader,
	shiftTypes planningShiftTypeReader,
	validate *validator.Validate,
	logger *zap.Logger,
) *PlanningService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		assignments: assignments,
		employees:   employees,
		shiftTypes:  shiftTypes,
		validator:   validate,
		logger:      logger,
	}
}

// GetWeek returns the roster for the week starting at weekStart (a Monday).
func (s *PlanningService) GetWeek(ctx context.Context, weekStartRaw string) (*dto.WeekPlanningResponse, error) {
	weekStart, err := time.Parse(models.DateLayout, weekStartRaw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid week start, expected YYYY-MM-DD")
	}
	if weekStart.Weekday() != time.Monday {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week start must be a Monday")
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	shiftTypes, err := s.shiftTypes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift types")
	}
	assignments, err := s.assignments.ListDetailByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	return &dto.WeekPlanningResponse{
		WeekStart:   weekStartRaw,
		WeekEnd:     weekEnd.Format(models.DateLayout),
		ShiftTypes:  shiftTypes,
		Assignments: assignments,
	}, nil
}

// AssignManually places a manual assignment on a slot. The slot must be free
// and the employee must not already work that day.
func (s *PlanningService) AssignManually(ctx context.Context, req dto.ManualAssignRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	employee, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if !employee.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "employee is inactive")
	}
	if _, err := s.shiftTypes.FindByID(ctx, req.ShiftTypeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift type")
	}

	existing, err := s.assignments.ListByDateRange(ctx, date, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	for _, a := range existing {
		if a.ShiftTypeID == req.ShiftTypeID {
			return nil, appErrors.Clone(appErrors.ErrSlotTaken, "")
		}
		if a.EmployeeID == req.EmployeeID {
			return nil, appErrors.Clone(appErrors.ErrDoubleBooked, "")
		}
	}

	assignment := &models.Assignment{
		EmployeeID:  req.EmployeeID,
		ShiftTypeID: req.ShiftTypeID,
		Date:        date,
		Origin:      models.OriginManual,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.logger.Info("manual assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("employee_id", assignment.EmployeeID),
		zap.String("date", assignment.DateKey()),
	)
	return assignment, nil
}

// RemoveAssignment deletes an assignment, freeing its slot for the next run.
func (s *PlanningService) RemoveAssignment(ctx context.Context, id string) error {
	if _, err := s.assignments.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
