package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/profiremanager/pfm-api/internal/models"
)

const replacementColumns = "id, assignment_id, requester_id, shift_type_id, date, reason, status, replacement_id, created_at, updated_at"

// ReplacementRepository provides persistence for replacement requests.
type ReplacementRepository struct {
	db *sqlx.DB
}

// NewReplacementRepository creates a new replacement repository.
func NewReplacementRepository(db *sqlx.DB) *ReplacementRepository {
	return &ReplacementRepository{db: db}
}

// List returns every replacement request, newest first.
func (r *ReplacementRepository) List(ctx context.Context) ([]models.ReplacementRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM replacement_requests ORDER BY created_at DESC", replacementColumns)
	var items []models.ReplacementRequest
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list replacement requests: %w", err)
	}
	return items, nil
}

// ListByRequester returns a requester's own replacement requests.
func (r *ReplacementRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.ReplacementRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM replacement_requests WHERE requester_id = $1 ORDER BY created_at DESC", replacementColumns)
	var items []models.ReplacementRequest
	if err := r.db.SelectContext(ctx, &items, query, requesterID); err != nil {
		return nil, fmt.Errorf("list replacement requests by requester: %w", err)
	}
	return items, nil
}

// CountByStatus counts requests in the given state.
func (r *ReplacementRepository) CountByStatus(ctx context.Context, status models.ReplacementStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM replacement_requests WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count replacement requests: %w", err)
	}
	return total, nil
}

// FindByID loads a replacement request by id.
func (r *ReplacementRepository) FindByID(ctx context.Context, id string) (*models.ReplacementRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM replacement_requests WHERE id = $1", replacementColumns)
	var item models.ReplacementRequest
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a new replacement request.
func (r *ReplacementRepository) Create(ctx context.Context, item *models.ReplacementRequest) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = models.ReplacementPending
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO replacement_requests (id, assignment_id, requester_id, shift_type_id, date, reason, status, replacement_id, created_at, updated_at) VALUES (:id, :assignment_id, :requester_id, :shift_type_id, :date, :reason, :status, :replacement_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create replacement request: %w", err)
	}
	return nil
}

// SetStatus transitions a request, optionally recording the replacement.
func (r *ReplacementRepository) SetStatus(ctx context.Context, id string, status models.ReplacementStatus, replacementID *string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE replacement_requests SET status = $2, replacement_id = $3, updated_at = $4 WHERE id = $1`, id, status, replacementID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update replacement request status: %w", err)
	}
	return nil
}
