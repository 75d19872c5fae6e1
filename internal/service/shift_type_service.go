package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type shiftTypeRepository interface {
	List(ctx context.Context) ([]models.ShiftType, error)
	FindByID(ctx context.Context, id string) (*models.ShiftType, error)
	Create(ctx context.Context, st *models.ShiftType) error
	Update(ctx context.Context, st *models.ShiftType) error
	Delete(ctx context.Context, id string) error
}

// ShiftTypeService manages shift type definitions.
type ShiftTypeService struct {
	repo      shiftTypeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftTypeService constructs a ShiftTypeService.
func NewShiftTypeService(repo shiftTypeRepository, validate *validator.Validate, logger *zap.Logger) *ShiftTypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftTypeService{repo: repo, validator: validate, logger: logger}
}

// List returns every shift type in creation order, the same order the
// assignment engine walks them in.
func (s *ShiftTypeService) List(ctx context.Context) ([]models.ShiftType, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shift types")
	}
	return items, nil
}

// Get loads a single shift type.
func (s *ShiftTypeService) Get(ctx context.Context, id string) (*models.ShiftType, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift type")
	}
	return st, nil
}

// Create defines a new shift type.
func (s *ShiftTypeService) Create(ctx context.Context, req dto.CreateShiftTypeRequest) (*models.ShiftType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift type payload")
	}

	st := &models.ShiftType{
		Name:            req.Name,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		RequiredStaff:   req.RequiredStaff,
		DurationHours:   req.DurationHours,
		Color:           req.Color,
		ApplicableDays:  pq.StringArray(req.ApplicableDays),
		OfficerRequired: req.OfficerRequired,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift type")
	}

	s.logger.Info("shift type created", zap.String("shift_type_id", st.ID), zap.String("name", st.Name))
	return st, nil
}

// Update applies a partial update to a shift type.
func (s *ShiftTypeService) Update(ctx context.Context, id string, req dto.UpdateShiftTypeRequest) (*models.ShiftType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift type payload")
	}

	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.StartTime != nil {
		st.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		st.EndTime = *req.EndTime
	}
	if req.RequiredStaff != nil {
		st.RequiredStaff = *req.RequiredStaff
	}
	if req.DurationHours != nil {
		st.DurationHours = *req.DurationHours
	}
	if req.ApplicableDays != nil {
		st.ApplicableDays = pq.StringArray(*req.ApplicableDays)
	}
	if req.OfficerRequired != nil {
		st.OfficerRequired = *req.OfficerRequired
	}
	if req.Color != nil {
		st.Color = *req.Color
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift type")
	}
	return st, nil
}

// Delete removes a shift type and its assignments.
func (s *ShiftTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift type")
	}
	s.logger.Info("shift type deleted", zap.String("shift_type_id", id))
	return nil
}
