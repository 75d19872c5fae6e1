package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/profiremanager/pfm-api/internal/models"
)

const availabilityColumns = "id, employee_id, date, start_time, end_time, status, created_at"

// AvailabilityRepository provides persistence for availability windows.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByEmployee returns an employee's availability windows in date order.
func (r *AvailabilityRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.Availability, error) {
	query := fmt.Sprintf("SELECT %s FROM availabilities WHERE employee_id = $1 ORDER BY date ASC, start_time ASC", availabilityColumns)
	var items []models.Availability
	if err := r.db.SelectContext(ctx, &items, query, employeeID); err != nil {
		return nil, fmt.Errorf("list availabilities by employee: %w", err)
	}
	return items, nil
}

// ListAvailableByDateRange returns AVAILABLE windows for all employees within
// [from, to] inclusive, the snapshot the engine filters candidates against.
func (r *AvailabilityRepository) ListAvailableByDateRange(ctx context.Context, from, to time.Time) ([]models.Availability, error) {
	query := fmt.Sprintf("SELECT %s FROM availabilities WHERE status = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC", availabilityColumns)
	var items []models.Availability
	if err := r.db.SelectContext(ctx, &items, query, models.AvailabilityAvailable, from, to); err != nil {
		return nil, fmt.Errorf("list availabilities by date range: %w", err)
	}
	return items, nil
}

// FindByID loads an availability record by id.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.Availability, error) {
	query := fmt.Sprintf("SELECT %s FROM availabilities WHERE id = $1", availabilityColumns)
	var item models.Availability
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ReplaceForEmployee atomically swaps an employee's availability windows.
func (r *AvailabilityRepository) ReplaceForEmployee(ctx context.Context, employeeID string, items []models.Availability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace availabilities: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM availabilities WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("clear availabilities: %w", err)
	}

	now := time.Now().UTC()
	for i := range items {
		item := items[i]
		item.EmployeeID = employeeID
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, `INSERT INTO availabilities (id, employee_id, date, start_time, end_time, status, created_at) VALUES (:id, :employee_id, :date, :start_time, :end_time, :status, :created_at)`, &item); err != nil {
			return fmt.Errorf("insert availability: %w", err)
		}
		items[i] = item
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace availabilities: %w", err)
	}
	return nil
}

// Delete removes a single availability window.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availabilities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}
