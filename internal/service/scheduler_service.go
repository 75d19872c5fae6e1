package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type rosterEmployeeSource interface {
	ListActive(ctx context.Context) ([]models.Employee, error)
}

type rosterShiftTypeSource interface {
	List(ctx context.Context) ([]models.ShiftType, error)
}

type rosterAvailabilitySource interface {
	ListAvailableByDateRange(ctx context.Context, from, to time.Time) ([]models.Availability, error)
}

type rosterAssignmentStore interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error)
	Create(ctx context.Context, item *models.Assignment) error
}

type runLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type rosterMetrics interface {
	RecordRosterRun(created, unfilled int, duration time.Duration)
}

// SchedulerConfig governs engine behaviour.
type SchedulerConfig struct {
	// OfficerFallback lets an officer-required slot fall back to the full
	// candidate set when no officer is available that day.
	OfficerFallback bool
	RunLockTTL      time.Duration
}

// SchedulerService fills the open slots of a week with automatic
// assignments: manual assignments are never touched, part-time staff are
// picked by fewest monthly hours with seniority as the tie-break, and every
// selection is persisted before the next slot is evaluated.
type SchedulerService struct {
	employees      rosterEmployeeSource
	shiftTypes     rosterShiftTypeSource
	availabilities rosterAvailabilitySource
	assignments    rosterAssignmentStore
	locks          runLocker
	metrics        rosterMetrics
	validator      *validator.Validate
	logger         *zap.Logger
	cfg            SchedulerConfig
}

// NewSchedulerService wires engine dependencies.
func NewSchedulerService(
	employees rosterEmployeeSource,
	shiftTypes rosterShiftTypeSource,
	availabilities rosterAvailabilitySource,
	assignments rosterAssignmentStore,
	locks runLocker,
	metrics rosterMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg SchedulerConfig,
) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = NewMemoryRunLocker()
	}
	if cfg.RunLockTTL <= 0 {
		cfg.RunLockTTL = 2 * time.Minute
	}
	return &SchedulerService{
		employees:      employees,
		shiftTypes:     shiftTypes,
		availabilities: availabilities,
		assignments:    assignments,
		locks:          locks,
		metrics:        metrics,
		validator:      validate,
		logger:         logger,
		cfg:            cfg,
	}
}

// GenerateWeek runs the automatic assignment engine over one week. Slots are
// processed in shift-type order, days chronologically within each shift type;
// each new assignment is persisted immediately so later slots see it.
func (s *SchedulerService) GenerateWeek(ctx context.Context, req dto.AutoAssignRequest) (*dto.RosterRunReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid auto-assign payload")
	}
	weekStart, err := time.Parse(models.DateLayout, req.WeekStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid week start %q, expected YYYY-MM-DD", req.WeekStart))
	}
	if weekStart.Weekday() != time.Monday {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week start must be a Monday")
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	lockKey := "roster:run:" + req.WeekStart
	acquired, err := s.locks.AcquireLock(ctx, lockKey, s.cfg.RunLockTTL)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to acquire run lock")
	}
	if !acquired {
		return nil, appErrors.Clone(appErrors.ErrRunInProgress, "")
	}
	defer func() {
		if releaseErr := s.locks.ReleaseLock(ctx, lockKey); releaseErr != nil {
			s.logger.Warn("failed to release run lock", zap.String("key", lockKey), zap.Error(releaseErr))
		}
	}()

	start := time.Now()
	state, shiftTypes, employees, err := s.loadSnapshot(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	report := &dto.RosterRunReport{
		WeekStart:     req.WeekStart,
		WeekEnd:       weekEnd.Format(models.DateLayout),
		UnfilledSlots: []dto.SlotRef{},
	}

	for _, shiftType := range shiftTypes {
		for offset := 0; offset < 7; offset++ {
			date := weekStart.AddDate(0, 0, offset)
			if !shiftType.AppliesTo(date) {
				continue
			}
			if state.slotCovered(date, shiftType.ID) {
				continue
			}

			candidates := s.eligibleCandidates(state, employees, date)
			selected, ok := s.selectCandidate(shiftType, candidates, state.seedHours)
			if !ok {
				report.UnfilledSlots = append(report.UnfilledSlots, dto.SlotRef{
					Date:          date.Format(models.DateLayout),
					ShiftTypeID:   shiftType.ID,
					ShiftTypeName: shiftType.Name,
				})
				continue
			}

			assignment := &models.Assignment{
				EmployeeID:  selected.ID,
				ShiftTypeID: shiftType.ID,
				Date:        date,
				Origin:      models.OriginAuto,
			}
			if err := s.assignments.Create(ctx, assignment); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
					fmt.Sprintf("run aborted: %d assignments committed before failure", report.AssignmentsCreated))
			}
			report.AssignmentsCreated++
			state.commit(selected.ID, shiftType, date)
		}
	}

	report.MonthHours = make(map[string]int, len(state.hours))
	for id, h := range state.hours {
		report.MonthHours[id] = h
	}

	if s.metrics != nil {
		s.metrics.RecordRosterRun(report.AssignmentsCreated, len(report.UnfilledSlots), time.Since(start))
	}
	s.logger.Info("roster run completed",
		zap.String("week_start", report.WeekStart),
		zap.String("week_end", report.WeekEnd),
		zap.Int("assignments_created", report.AssignmentsCreated),
		zap.Int("unfilled_slots", len(report.UnfilledSlots)),
	)
	return report, nil
}

// loadSnapshot reads employees, shift types, availabilities and assignments
// once at run start. Monthly hours are seeded from every assignment in the
// calendar month containing the week start.
func (s *SchedulerService) loadSnapshot(ctx context.Context, weekStart, weekEnd time.Time) (*rosterState, []models.ShiftType, []models.Employee, error) {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employees")
	}
	shiftTypes, err := s.shiftTypes.List(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift types")
	}

	state := newRosterState(shiftTypes)

	monthStart, monthEnd := monthBounds(weekStart)
	monthAssignments, err := s.assignments.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load monthly assignments")
	}
	for _, a := range monthAssignments {
		state.hours[a.EmployeeID] += state.durations[a.ShiftTypeID]
	}
	for id, h := range state.hours {
		state.seedHours[id] = h
	}

	weekAssignments, err := s.assignments.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week assignments")
	}
	for _, a := range weekAssignments {
		state.occupy(a)
	}

	availabilities, err := s.availabilities.ListAvailableByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availabilities")
	}
	for _, av := range availabilities {
		state.available[availabilityKey(av.EmployeeID, av.Date)] = struct{}{}
	}

	return state, shiftTypes, employees, nil
}

// eligibleCandidates returns active part-time employees available on the
// date and not yet assigned anywhere that day.
func (s *SchedulerService) eligibleCandidates(state *rosterState, employees []models.Employee, date time.Time) []models.Employee {
	dateKey := date.Format(models.DateLayout)
	candidates := make([]models.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.EmploymentType == models.EmploymentFullTime {
			// Full-time staff follow a separately maintained fixed roster.
			continue
		}
		if _, ok := state.available[availabilityKey(emp.ID, date)]; !ok {
			continue
		}
		if assigned := state.byDate[dateKey]; assigned != nil {
			if _, taken := assigned[emp.ID]; taken {
				continue
			}
		}
		candidates = append(candidates, emp)
	}
	return candidates
}

// selectCandidate applies the selection policy: officer filter, ascending
// monthly hours, then earliest hire date, then employee id for determinism.
// Ordering compares seedHours, the snapshot frozen at run start, never the
// live tally in rosterState.hours. Candidates who entered the week tied
// stay tied for the whole run; the live tally only feeds the run report.
func (s *SchedulerService) selectCandidate(shiftType models.ShiftType, candidates []models.Employee, hours map[string]int) (models.Employee, bool) {
	if len(candidates) == 0 {
		return models.Employee{}, false
	}
	pool := candidates
	if shiftType.OfficerRequired {
		officers := make([]models.Employee, 0, len(candidates))
		for _, c := range candidates {
			if c.Rank.IsOfficer() {
				officers = append(officers, c)
			}
		}
		switch {
		case len(officers) > 0:
			pool = officers
		case !s.cfg.OfficerFallback:
			return models.Employee{}, false
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		hi, hj := hours[pool[i].ID], hours[pool[j].ID]
		if hi != hj {
			return hi < hj
		}
		if !pool[i].HireDate.Equal(pool[j].HireDate) {
			return pool[i].HireDate.Before(pool[j].HireDate)
		}
		return pool[i].ID < pool[j].ID
	})
	return pool[0], true
}

// --- Run state ---

// rosterState tracks the mutable view of a run: monthly hours per employee,
// per-day assignments and slot occupancy. It is owned by the run and mutated
// only when a selection commits. seedHours is the frozen ordering snapshot
// taken at run start; hours is the running tally that includes this run's
// own assignments.
type rosterState struct {
	hours     map[string]int
	seedHours map[string]int
	byDate    map[string]map[string]struct{}
	bySlot    map[string]models.AssignmentOrigin
	available map[string]struct{}
	durations map[string]int
}

func newRosterState(shiftTypes []models.ShiftType) *rosterState {
	durations := make(map[string]int, len(shiftTypes))
	for _, st := range shiftTypes {
		durations[st.ID] = st.DurationHours
	}
	return &rosterState{
		hours:     make(map[string]int),
		seedHours: make(map[string]int),
		byDate:    make(map[string]map[string]struct{}),
		bySlot:    make(map[string]models.AssignmentOrigin),
		available: make(map[string]struct{}),
		durations: durations,
	}
}

func (s *rosterState) occupy(a models.Assignment) {
	dateKey := a.DateKey()
	if s.byDate[dateKey] == nil {
		s.byDate[dateKey] = make(map[string]struct{})
	}
	s.byDate[dateKey][a.EmployeeID] = struct{}{}
	s.bySlot[a.SlotKey()] = a.Origin
}

// slotCovered reports whether any assignment, manual or automatic, already
// holds the slot. Re-runs therefore never duplicate a filled slot.
func (s *rosterState) slotCovered(date time.Time, shiftTypeID string) bool {
	_, ok := s.bySlot[date.Format(models.DateLayout)+"|"+shiftTypeID]
	return ok
}

func (s *rosterState) commit(employeeID string, shiftType models.ShiftType, date time.Time) {
	s.occupy(models.Assignment{
		EmployeeID:  employeeID,
		ShiftTypeID: shiftType.ID,
		Date:        date,
		Origin:      models.OriginAuto,
	})
	s.hours[employeeID] += shiftType.DurationHours
}

func availabilityKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(models.DateLayout)
}

func monthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

// --- In-process run lock ---

// MemoryRunLocker serialises runs within a single process. Used when Redis
// is not configured.
type MemoryRunLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewMemoryRunLocker builds an in-process advisory locker.
func NewMemoryRunLocker() *MemoryRunLocker {
	return &MemoryRunLocker{held: make(map[string]time.Time)}
}

// AcquireLock takes the key unless a live holder exists.
func (l *MemoryRunLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if expiry, ok := l.held[key]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	l.held[key] = time.Now().Add(ttl)
	return true, nil
}

// ReleaseLock drops the key.
func (l *MemoryRunLocker) ReleaseLock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
