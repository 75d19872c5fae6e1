package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/profiremanager/pfm-api/internal/models"
)

const shiftTypeColumns = "id, name, start_time, end_time, required_staff, duration_hours, color, applicable_days, officer_required, created_at, updated_at"

// ShiftTypeRepository provides persistence for shift type definitions.
type ShiftTypeRepository struct {
	db *sqlx.DB
}

// NewShiftTypeRepository creates a new shift type repository.
func NewShiftTypeRepository(db *sqlx.DB) *ShiftTypeRepository {
	return &ShiftTypeRepository{db: db}
}

// List returns all shift types in creation order. The engine relies on this
// order for slot traversal, so it must be stable.
func (r *ShiftTypeRepository) List(ctx context.Context) ([]models.ShiftType, error) {
	query := fmt.Sprintf("SELECT %s FROM shift_types ORDER BY created_at ASC, id ASC", shiftTypeColumns)
	var types []models.ShiftType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list shift types: %w", err)
	}
	return types, nil
}

// FindByID loads a shift type by id.
func (r *ShiftTypeRepository) FindByID(ctx context.Context, id string) (*models.ShiftType, error) {
	query := fmt.Sprintf("SELECT %s FROM shift_types WHERE id = $1", shiftTypeColumns)
	var st models.ShiftType
	if err := r.db.GetContext(ctx, &st, query, id); err != nil {
		return nil, err
	}
	return &st, nil
}

// Create stores a new shift type.
func (r *ShiftTypeRepository) Create(ctx context.Context, st *models.ShiftType) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now

	const query = `INSERT INTO shift_types (id, name, start_time, end_time, required_staff, duration_hours, color, applicable_days, officer_required, created_at, updated_at) VALUES (:id, :name, :start_time, :end_time, :required_staff, :duration_hours, :color, :applicable_days, :officer_required, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, st); err != nil {
		return fmt.Errorf("create shift type: %w", err)
	}
	return nil
}

// Update modifies a shift type.
func (r *ShiftTypeRepository) Update(ctx context.Context, st *models.ShiftType) error {
	st.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shift_types SET name = :name, start_time = :start_time, end_time = :end_time, required_staff = :required_staff, duration_hours = :duration_hours, color = :color, applicable_days = :applicable_days, officer_required = :officer_required, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, st); err != nil {
		return fmt.Errorf("update shift type: %w", err)
	}
	return nil
}

// Delete removes a shift type and its assignments.
func (r *ShiftTypeRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete shift type: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM assignments WHERE shift_type_id = $1`, id); err != nil {
		return fmt.Errorf("delete shift type assignments: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shift_types WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shift type: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete shift type: %w", err)
	}
	return nil
}
