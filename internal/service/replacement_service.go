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

type replacementRepository interface {
	List(ctx context.Context) ([]models.ReplacementRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.ReplacementRequest, error)
	FindByID(ctx context.Context, id string) (*models.ReplacementRequest, error)
	Create(ctx context.Context, item *models.ReplacementRequest) error
	SetStatus(ctx context.Context, id string, status models.ReplacementStatus, replacementID *string) error
}

type replacementAssignmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error)
	SetStatus(ctx context.Context, id string, status models.AssignmentStatus) error
	Reassign(ctx context.Context, id, employeeID string) error
}

// ReplacementService handles replacement requests on existing assignments.
type ReplacementService struct {
	repo        replacementRepository
	assignments replacementAssignmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewReplacementService constructs a ReplacementService.
func NewReplacementService(repo replacementRepository, assignments replacementAssignmentRepository, validate *validator.Validate, logger *zap.Logger) *ReplacementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplacementService{repo: repo, assignments: assignments, validator: validate, logger: logger}
}

// List returns every replacement request, for supervisors.
func (s *ReplacementService) List(ctx context.Context) ([]models.ReplacementRequest, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list replacement requests")
	}
	return items, nil
}

// ListMine returns the requester's own requests.
func (s *ReplacementService) ListMine(ctx context.Context, requesterID string) ([]models.ReplacementRequest, error) {
	items, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list replacement requests")
	}
	return items, nil
}

// Request opens a replacement request on one of the requester's assignments.
func (s *ReplacementService) Request(ctx context.Context, requesterID string, req dto.CreateReplacementRequest) (*models.ReplacementRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid replacement payload")
	}

	assignment, err := s.assignments.FindByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if assignment.EmployeeID != requesterID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "assignment belongs to another employee")
	}

	item := &models.ReplacementRequest{
		AssignmentID: assignment.ID,
		RequesterID:  requesterID,
		ShiftTypeID:  assignment.ShiftTypeID,
		Date:         assignment.Date,
		Reason:       req.Reason,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create replacement request")
	}

	if err := s.assignments.SetStatus(ctx, assignment.ID, models.AssignmentReplacementRequested); err != nil {
		s.logger.Warn("failed to flag assignment", zap.String("assignment_id", assignment.ID), zap.Error(err))
	}

	s.logger.Info("replacement requested",
		zap.String("request_id", item.ID),
		zap.String("assignment_id", assignment.ID),
	)
	return item, nil
}

// Decide approves or refuses a pending request. Approval with a replacement
// employee moves the assignment to them.
func (s *ReplacementService) Decide(ctx context.Context, id string, req dto.DecideReplacementRequest) (*models.ReplacementRequest, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "replacement request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load replacement request")
	}
	if item.Status != models.ReplacementPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "replacement request already decided")
	}

	status := models.ReplacementRefused
	if req.Approve {
		status = models.ReplacementApproved
		if req.ReplacementID != nil {
			sameDay, err := s.assignments.ListByDateRange(ctx, item.Date, item.Date)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
			}
			for _, a := range sameDay {
				if a.ID != item.AssignmentID && a.EmployeeID == *req.ReplacementID {
					return nil, appErrors.Clone(appErrors.ErrDoubleBooked, "")
				}
			}
			if err := s.assignments.Reassign(ctx, item.AssignmentID, *req.ReplacementID); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign shift")
			}
		}
	} else {
		if err := s.assignments.SetStatus(ctx, item.AssignmentID, models.AssignmentConfirmed); err != nil {
			s.logger.Warn("failed to restore assignment status", zap.String("assignment_id", item.AssignmentID), zap.Error(err))
		}
	}

	if err := s.repo.SetStatus(ctx, id, status, req.ReplacementID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update replacement request")
	}

	item.Status = status
	item.ReplacementID = req.ReplacementID
	return item, nil
}
