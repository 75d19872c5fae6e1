package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type stubEmployeeSource struct {
	employees []models.Employee
}

func (s *stubEmployeeSource) ListActive(ctx context.Context) ([]models.Employee, error) {
	return s.employees, nil
}

type stubShiftTypeSource struct {
	shiftTypes []models.ShiftType
}

func (s *stubShiftTypeSource) List(ctx context.Context) ([]models.ShiftType, error) {
	return s.shiftTypes, nil
}

type stubAvailabilitySource struct {
	items []models.Availability
}

func (s *stubAvailabilitySource) ListAvailableByDateRange(ctx context.Context, from, to time.Time) ([]models.Availability, error) {
	var out []models.Availability
	for _, av := range s.items {
		if av.Date.Before(from) || av.Date.After(to) {
			continue
		}
		out = append(out, av)
	}
	return out, nil
}

type stubAssignmentStore struct {
	existing  []models.Assignment
	created   []models.Assignment
	failAfter int
}

func (s *stubAssignmentStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Assignment, error) {
	var out []models.Assignment
	all := append(append([]models.Assignment{}, s.existing...), s.created...)
	for _, a := range all {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *stubAssignmentStore) Create(ctx context.Context, item *models.Assignment) error {
	if s.failAfter > 0 && len(s.created) >= s.failAfter {
		return errors.New("insert failed")
	}
	s.created = append(s.created, *item)
	return nil
}

type stubRunLocker struct {
	busy     bool
	acquired []string
	released []string
}

func (l *stubRunLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l.busy {
		return false, nil
	}
	l.acquired = append(l.acquired, key)
	return true, nil
}

func (l *stubRunLocker) ReleaseLock(ctx context.Context, key string) error {
	l.released = append(l.released, key)
	return nil
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return d
}

func partTimeOfficer(id string, rank models.Rank, hired string) models.Employee {
	hireDate, _ := time.Parse(models.DateLayout, hired)
	return models.Employee{
		ID:             id,
		Rank:           rank,
		EmploymentType: models.EmploymentPartTime,
		Active:         true,
		HireDate:       hireDate,
	}
}

func weekdayAvailability(t *testing.T, employeeID, weekStart string, days int) []models.Availability {
	t.Helper()
	start := mustDate(t, weekStart)
	out := make([]models.Availability, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, models.Availability{
			EmployeeID: employeeID,
			Date:       start.AddDate(0, 0, i),
			Status:     models.AvailabilityAvailable,
		})
	}
	return out
}

func newTestScheduler(
	employees *stubEmployeeSource,
	shiftTypes *stubShiftTypeSource,
	availabilities *stubAvailabilitySource,
	assignments *stubAssignmentStore,
	cfg SchedulerConfig,
) *SchedulerService {
	return NewSchedulerService(
		employees, shiftTypes, availabilities, assignments,
		&stubRunLocker{}, nil, validator.New(), zap.NewNop(), cfg,
	)
}

func TestGenerateWeekSeniorityTieBreak(t *testing.T) {
	// Week 2024-06-03..06-09, one officer-required morning shift Mon-Fri.
	// Both officers start the month at zero hours; the earlier hire wins the
	// tie and holds it for the whole week.
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{employees: []models.Employee{
		partTimeOfficer("emp-a", models.RankLieutenant, "2019-01-01"),
		partTimeOfficer("emp-b", models.RankCaptain, "2021-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:              "st-am",
		Name:            "AM",
		DurationHours:   6,
		OfficerRequired: true,
		ApplicableDays:  []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}}}
	availabilities := &stubAvailabilitySource{items: append(
		weekdayAvailability(t, "emp-a", weekStart, 5),
		weekdayAvailability(t, "emp-b", weekStart, 5)...,
	)}
	store := &stubAssignmentStore{}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	assert.Equal(t, 5, report.AssignmentsCreated)
	assert.Empty(t, report.UnfilledSlots)
	require.Len(t, store.created, 5)
	for i, a := range store.created {
		assert.Equal(t, "emp-a", a.EmployeeID)
		assert.Equal(t, mustDate(t, weekStart).AddDate(0, 0, i), a.Date)
		assert.Equal(t, models.OriginAuto, a.Origin)
	}
	assert.Equal(t, 30, report.MonthHours["emp-a"])
	assert.Zero(t, report.MonthHours["emp-b"])
}

func TestGenerateWeekLowerHoursWinsOverSeniority(t *testing.T) {
	// emp-a is more senior but already worked 12h this month; emp-b at zero
	// hours takes the slot.
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{employees: []models.Employee{
		partTimeOfficer("emp-a", models.RankLieutenant, "2019-01-01"),
		partTimeOfficer("emp-b", models.RankCaptain, "2021-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:             "st-am",
		Name:           "AM",
		DurationHours:  6,
		ApplicableDays: []string{"monday"},
	}}}
	availabilities := &stubAvailabilitySource{items: append(
		weekdayAvailability(t, "emp-a", weekStart, 1),
		weekdayAvailability(t, "emp-b", weekStart, 1)...,
	)}
	store := &stubAssignmentStore{existing: []models.Assignment{
		{ID: "prev-1", EmployeeID: "emp-a", ShiftTypeID: "st-am", Date: mustDate(t, "2024-06-01"), Origin: models.OriginAuto},
		{ID: "prev-2", EmployeeID: "emp-a", ShiftTypeID: "st-am", Date: mustDate(t, "2024-06-02"), Origin: models.OriginAuto},
	}}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, "emp-b", store.created[0].EmployeeID)
	assert.Equal(t, 12, report.MonthHours["emp-a"])
	assert.Equal(t, 6, report.MonthHours["emp-b"])
}

func TestGenerateWeekSlotEnumeration(t *testing.T) {
	// Slot count equals the sum over shift types of matching weekdays: an
	// empty applicable-days set means every day.
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{
		{ID: "st-1", Name: "Day", DurationHours: 8, ApplicableDays: []string{"monday", "wednesday"}},
		{ID: "st-2", Name: "Night", DurationHours: 12},
	}}
	store := &stubAssignmentStore{}

	svc := newTestScheduler(employees, shiftTypes, &stubAvailabilitySource{}, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	assert.Zero(t, report.AssignmentsCreated)
	assert.Len(t, report.UnfilledSlots, 9)
}

func TestGenerateWeekSkipsCoveredSlotsAndIsIdempotent(t *testing.T) {
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{employees: []models.Employee{
		partTimeOfficer("emp-a", models.RankFirefighter, "2019-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:             "st-am",
		Name:           "AM",
		DurationHours:  6,
		ApplicableDays: []string{"monday", "tuesday"},
	}}}
	availabilities := &stubAvailabilitySource{items: weekdayAvailability(t, "emp-a", weekStart, 2)}
	store := &stubAssignmentStore{existing: []models.Assignment{{
		ID:          "manual-1",
		EmployeeID:  "emp-x",
		ShiftTypeID: "st-am",
		Date:        mustDate(t, weekStart),
		Origin:      models.OriginManual,
	}}}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	// Monday is manually covered, only Tuesday gets filled.
	assert.Equal(t, 1, report.AssignmentsCreated)
	require.Len(t, store.created, 1)
	assert.Equal(t, mustDate(t, "2024-06-04"), store.created[0].Date)

	// Second run sees both slots covered and creates nothing.
	rerun, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)
	assert.Zero(t, rerun.AssignmentsCreated)
	assert.Empty(t, rerun.UnfilledSlots)
	assert.Len(t, store.created, 1)
}

func TestGenerateWeekNoSameDayDoubleBooking(t *testing.T) {
	// One candidate, two shift types on the same day: the second slot stays
	// unfilled rather than double-booking.
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{employees: []models.Employee{
		partTimeOfficer("emp-a", models.RankFirefighter, "2019-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{
		{ID: "st-am", Name: "AM", DurationHours: 6, ApplicableDays: []string{"monday"}},
		{ID: "st-pm", Name: "PM", DurationHours: 6, ApplicableDays: []string{"monday"}},
	}}
	availabilities := &stubAvailabilitySource{items: weekdayAvailability(t, "emp-a", weekStart, 1)}
	store := &stubAssignmentStore{}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	assert.Equal(t, 1, report.AssignmentsCreated)
	require.Len(t, report.UnfilledSlots, 1)
	assert.Equal(t, "st-pm", report.UnfilledSlots[0].ShiftTypeID)

	seen := map[string]struct{}{}
	for _, a := range append(store.existing, store.created...) {
		key := a.EmployeeID + "|" + a.DateKey()
		_, dup := seen[key]
		assert.False(t, dup, "employee double-booked on %s", a.DateKey())
		seen[key] = struct{}{}
	}
}

func TestGenerateWeekOfficerPreferredOverLowerHours(t *testing.T) {
	// The officer subset is selected from even when a non-officer has fewer
	// hours.
	weekStart := "2024-06-03"
	officer := partTimeOfficer("emp-officer", models.RankCaptain, "2022-01-01")
	firefighter := partTimeOfficer("emp-ff", models.RankFirefighter, "2015-01-01")
	employees := &stubEmployeeSource{employees: []models.Employee{firefighter, officer}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:              "st-am",
		Name:            "AM",
		DurationHours:   6,
		OfficerRequired: true,
		ApplicableDays:  []string{"monday"},
	}}}
	availabilities := &stubAvailabilitySource{items: append(
		weekdayAvailability(t, "emp-officer", weekStart, 1),
		weekdayAvailability(t, "emp-ff", weekStart, 1)...,
	)}
	store := &stubAssignmentStore{existing: []models.Assignment{{
		ID: "prev-1", EmployeeID: "emp-officer", ShiftTypeID: "st-am", Date: mustDate(t, "2024-06-01"), Origin: models.OriginAuto,
	}}}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	_, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, "emp-officer", store.created[0].EmployeeID)
}

func TestGenerateWeekOfficerFallback(t *testing.T) {
	weekStart := "2024-06-03"
	shiftTypes := []models.ShiftType{{
		ID:              "st-am",
		Name:            "AM",
		DurationHours:   6,
		OfficerRequired: true,
		ApplicableDays:  []string{"monday"},
	}}
	newFixture := func() (*stubEmployeeSource, *stubAvailabilitySource, *stubAssignmentStore) {
		return &stubEmployeeSource{employees: []models.Employee{
				partTimeOfficer("emp-ff", models.RankFirefighter, "2015-01-01"),
			}},
			&stubAvailabilitySource{items: weekdayAvailability(t, "emp-ff", weekStart, 1)},
			&stubAssignmentStore{}
	}

	t.Run("enabled assigns a non-officer", func(t *testing.T) {
		employees, availabilities, store := newFixture()
		svc := newTestScheduler(employees, &stubShiftTypeSource{shiftTypes: shiftTypes}, availabilities, store, SchedulerConfig{OfficerFallback: true})
		report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
		require.NoError(t, err)
		assert.Equal(t, 1, report.AssignmentsCreated)
		require.Len(t, store.created, 1)
		assert.Equal(t, "emp-ff", store.created[0].EmployeeID)
	})

	t.Run("disabled leaves the slot unfilled", func(t *testing.T) {
		employees, availabilities, store := newFixture()
		svc := newTestScheduler(employees, &stubShiftTypeSource{shiftTypes: shiftTypes}, availabilities, store, SchedulerConfig{OfficerFallback: false})
		report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
		require.NoError(t, err)
		assert.Zero(t, report.AssignmentsCreated)
		assert.Len(t, report.UnfilledSlots, 1)
		assert.Empty(t, store.created)
	})
}

func TestGenerateWeekExcludesFullTimeAndUnavailable(t *testing.T) {
	weekStart := "2024-06-03"
	fullTime := partTimeOfficer("emp-ft", models.RankFirefighter, "2010-01-01")
	fullTime.EmploymentType = models.EmploymentFullTime
	employees := &stubEmployeeSource{employees: []models.Employee{
		fullTime,
		partTimeOfficer("emp-pt", models.RankFirefighter, "2018-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:             "st-am",
		Name:           "AM",
		DurationHours:  6,
		ApplicableDays: []string{"monday"},
	}}}
	// No availability records at all: the part-timer is treated as
	// unavailable, the full-timer is out of scope regardless.
	store := &stubAssignmentStore{}

	svc := newTestScheduler(employees, shiftTypes, &stubAvailabilitySource{}, store, SchedulerConfig{OfficerFallback: true})
	report, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.NoError(t, err)

	assert.Zero(t, report.AssignmentsCreated)
	assert.Len(t, report.UnfilledSlots, 1)
	assert.Empty(t, store.created)
}

func TestGenerateWeekRejectsNonMonday(t *testing.T) {
	svc := newTestScheduler(&stubEmployeeSource{}, &stubShiftTypeSource{}, &stubAvailabilitySource{}, &stubAssignmentStore{}, SchedulerConfig{})
	_, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: "2024-06-04"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: "04/06/2024"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGenerateWeekRunLockConflict(t *testing.T) {
	locker := &stubRunLocker{busy: true}
	svc := NewSchedulerService(
		&stubEmployeeSource{}, &stubShiftTypeSource{}, &stubAvailabilitySource{}, &stubAssignmentStore{},
		locker, nil, validator.New(), zap.NewNop(), SchedulerConfig{},
	)
	_, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: "2024-06-03"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRunInProgress.Code, appErrors.FromError(err).Code)
}

func TestGenerateWeekReleasesLock(t *testing.T) {
	locker := &stubRunLocker{}
	svc := NewSchedulerService(
		&stubEmployeeSource{}, &stubShiftTypeSource{}, &stubAvailabilitySource{}, &stubAssignmentStore{},
		locker, nil, validator.New(), zap.NewNop(), SchedulerConfig{},
	)
	_, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: "2024-06-03"})
	require.NoError(t, err)
	assert.Equal(t, []string{"roster:run:2024-06-03"}, locker.acquired)
	assert.Equal(t, []string{"roster:run:2024-06-03"}, locker.released)
}

func TestGenerateWeekPersistenceFailureKeepsCommitted(t *testing.T) {
	weekStart := "2024-06-03"
	employees := &stubEmployeeSource{employees: []models.Employee{
		partTimeOfficer("emp-a", models.RankFirefighter, "2019-01-01"),
	}}
	shiftTypes := &stubShiftTypeSource{shiftTypes: []models.ShiftType{{
		ID:             "st-am",
		Name:           "AM",
		DurationHours:  6,
		ApplicableDays: []string{"monday", "tuesday"},
	}}}
	availabilities := &stubAvailabilitySource{items: weekdayAvailability(t, "emp-a", weekStart, 2)}
	store := &stubAssignmentStore{failAfter: 1}

	svc := newTestScheduler(employees, shiftTypes, availabilities, store, SchedulerConfig{OfficerFallback: true})
	_, err := svc.GenerateWeek(context.Background(), dto.AutoAssignRequest{WeekStart: weekStart})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	assert.Len(t, store.created, 1)
}

func TestMemoryRunLocker(t *testing.T) {
	locker := NewMemoryRunLocker()
	ctx := context.Background()

	ok, err := locker.AcquireLock(ctx, "roster:run:2024-06-03", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locker.AcquireLock(ctx, "roster:run:2024-06-03", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// Another week is an independent key.
	ok, err = locker.AcquireLock(ctx, "roster:run:2024-06-10", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, locker.ReleaseLock(ctx, "roster:run:2024-06-03"))
	ok, err = locker.AcquireLock(ctx, "roster:run:2024-06-03", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
