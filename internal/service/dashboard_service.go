package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type dashboardEmployeeCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type dashboardAssignmentReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error)
	CountByDateRange(ctx context.Context, from, to time.Time) (int, error)
}

type dashboardShiftTypeReader interface {
	List(ctx context.Context) ([]models.ShiftType, error)
}

type dashboardReplacementCounter interface {
	CountByStatus(ctx context.Context, status models.ReplacementStatus) (int, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService aggregates station statistics.
type DashboardService struct {
	employees    dashboardEmployeeCounter
	assignments  dashboardAssignmentReader
	shiftTypes   dashboardShiftTypeReader
	replacements dashboardReplacementCounter
	cache        *CacheService
	logger       *zap.Logger
	now          func() time.Time
	cfg          DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Employees    dashboardEmployeeCounter
	Assignments  dashboardAssignmentReader
	ShiftTypes   dashboardShiftTypeReader
	Replacements dashboardReplacementCounter
	Cache        *CacheService
	Logger       *zap.Logger
	Config       DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		employees:    params.Employees,
		assignments:  params.Assignments,
		shiftTypes:   params.ShiftTypes,
		replacements: params.Replacements,
		cache:        params.Cache,
		logger:       logger,
		now:          time.Now,
		cfg:          cfg,
	}
}

// GetStats computes dashboard statistics for the current week and month.
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	weekStart := startOfWeek(today)
	weekEnd := weekStart.AddDate(0, 0, 6)
	cacheKey := fmt.Sprintf("dashboard:stats:%s", weekStart.Format(models.DateLayout))

	var cached models.DashboardStats
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	active, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count personnel")
	}

	shiftsThisWeek, err := s.assignments.CountByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count week assignments")
	}

	shiftTypes, err := s.shiftTypes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift types")
	}
	durations := make(map[string]int, len(shiftTypes))
	for _, st := range shiftTypes {
		durations[st.ID] = st.DurationHours
	}

	monthStart, monthEnd := monthBounds(today)
	monthAssignments, err := s.assignments.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month assignments")
	}
	hours := 0
	for _, a := range monthAssignments {
		hours += durations[a.ShiftTypeID]
	}

	weekAssignments, err := s.assignments.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week assignments")
	}

	pending, err := s.replacements.CountByStatus(ctx, models.ReplacementPending)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count replacements")
	}

	stats := &models.DashboardStats{
		ActivePersonnel:     active,
		ShiftsThisWeek:      shiftsThisWeek,
		HoursThisMonth:      hours,
		CoverageRate:        coverageRate(shiftTypes, weekAssignments, weekStart),
		PendingReplacements: pending,
	}

	if err := s.cache.Set(ctx, cacheKey, stats, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, nil
}

// InvalidateStats drops cached dashboard payloads, called after roster
// mutations.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dashboard:stats:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

// coverageRate is the share of the week's enumerable slots holding an
// assignment.
func coverageRate(shiftTypes []models.ShiftType, assignments []models.Assignment, weekStart time.Time) float64 {
	total := 0
	for _, st := range shiftTypes {
		for offset := 0; offset < 7; offset++ {
			if st.AppliesTo(weekStart.AddDate(0, 0, offset)) {
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	filled := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		filled[a.SlotKey()] = struct{}{}
	}
	rate := float64(len(filled)) / float64(total) * 100
	if rate > 100 {
		rate = 100
	}
	return rate
}

// startOfWeek returns the Monday of the week containing the date.
func startOfWeek(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
