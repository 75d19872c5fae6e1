package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/profiremanager/pfm-api/internal/models"
)

const assignmentColumns = "id, employee_id, shift_type_id, date, status, origin, created_at"

// AssignmentRepository provides persistence for shift assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByDateRange returns assignments with dates within [from, to] inclusive.
func (r *AssignmentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE date >= $1 AND date <= $2 ORDER BY date ASC, created_at ASC", assignmentColumns)
	var items []models.Assignment
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("list assignments by date range: %w", err)
	}
	return items, nil
}

// ListDetailByDateRange returns assignments joined with employee and shift
// type display fields for roster views and exports.
func (r *AssignmentRepository) ListDetailByDateRange(ctx context.Context, from, to time.Time) ([]models.AssignmentDetail, error) {
	const query = `SELECT a.id, a.employee_id, a.shift_type_id, a.date, a.status, a.origin, a.created_at,
		e.first_name || ' ' || e.last_name AS employee_name,
		e.rank AS employee_rank,
		t.name AS shift_type_name
	FROM assignments a
	JOIN employees e ON e.id = a.employee_id
	JOIN shift_types t ON t.id = a.shift_type_id
	WHERE a.date >= $1 AND a.date <= $2
	ORDER BY a.date ASC, t.start_time ASC, a.created_at ASC`
	var items []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("list assignment details: %w", err)
	}
	return items, nil
}

// List returns assignments matching the filter.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	base := fmt.Sprintf("SELECT %s FROM assignments WHERE 1=1", assignmentColumns)
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.ShiftTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("shift_type_id = $%d", len(args)+1))
		args = append(args, filter.ShiftTypeID)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, filter.To)
	}
	if filter.Origin != nil {
		conditions = append(conditions, fmt.Sprintf("origin = $%d", len(args)+1))
		args = append(args, *filter.Origin)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC"

	var items []models.Assignment
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

// FindByID loads an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE id = $1", assignmentColumns)
	var item models.Assignment
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountByDateRange counts assignments within [from, to] inclusive.
func (r *AssignmentRepository) CountByDateRange(ctx context.Context, from, to time.Time) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assignments WHERE date >= $1 AND date <= $2`, from, to); err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return total, nil
}

// Create stores a new assignment. The engine persists each selection through
// this method immediately, one slot at a time.
func (r *AssignmentRepository) Create(ctx context.Context, item *models.Assignment) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = models.AssignmentPlanned
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO assignments (id, employee_id, shift_type_id, date, status, origin, created_at) VALUES (:id, :employee_id, :shift_type_id, :date, :status, :origin, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// SetStatus updates an assignment's lifecycle status.
func (r *AssignmentRepository) SetStatus(ctx context.Context, id string, status models.AssignmentStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE assignments SET status = $2 WHERE id = $1`, id, status); err != nil {
		return fmt.Errorf("set assignment status: %w", err)
	}
	return nil
}

// Reassign moves an assignment to another employee, used when a replacement
// request is approved.
func (r *AssignmentRepository) Reassign(ctx context.Context, id, employeeID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE assignments SET employee_id = $2, status = $3 WHERE id = $1`, id, employeeID, models.AssignmentConfirmed); err != nil {
		return fmt.Errorf("reassign assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
