package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type mockReplacementRepo struct {
	items       map[string]*models.ReplacementRequest
	created     []*models.ReplacementRequest
	statusCalls []struct {
		id     string
		status models.ReplacementStatus
	}
}

func newMockReplacementRepo() *mockReplacementRepo {
	return &mockReplacementRepo{items: make(map[string]*models.ReplacementRequest)}
}

func (m *mockReplacementRepo) List(context.Context) ([]models.ReplacementRequest, error) {
	var out []models.ReplacementRequest
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *mockReplacementRepo) ListByRequester(_ context.Context, requesterID string) ([]models.ReplacementRequest, error) {
	var out []models.ReplacementRequest
	for _, item := range m.items {
		if item.RequesterID == requesterID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockReplacementRepo) FindByID(_ context.Context, id string) (*models.ReplacementRequest, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return item, nil
}

func (m *mockReplacementRepo) Create(_ context.Context, item *models.ReplacementRequest) error {
	if item.ID == "" {
		item.ID = "req-1"
	}
	item.Status = models.ReplacementPending
	m.items[item.ID] = item
	m.created = append(m.created, item)
	return nil
}

func (m *mockReplacementRepo) SetStatus(_ context.Context, id string, status models.ReplacementStatus, replacementID *string) error {
	m.statusCalls = append(m.statusCalls, struct {
		id     string
		status models.ReplacementStatus
	}{id, status})
	if item, ok := m.items[id]; ok {
		item.Status = status
		item.ReplacementID = replacementID
	}
	return nil
}

type mockReplacementAssignments struct {
	assignments map[string]*models.Assignment
	reassigned  map[string]string
	statuses    map[string]models.AssignmentStatus
}

func newMockReplacementAssignments() *mockReplacementAssignments {
	return &mockReplacementAssignments{
		assignments: make(map[string]*models.Assignment),
		reassigned:  make(map[string]string),
		statuses:    make(map[string]models.AssignmentStatus),
	}
}

func (m *mockReplacementAssignments) FindByID(_ context.Context, id string) (*models.Assignment, error) {
	item, ok := m.assignments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return item, nil
}

func (m *mockReplacementAssignments) ListByDateRange(_ context.Context, from, to time.Time) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, item := range m.assignments {
		if !item.Date.Before(from) && !item.Date.After(to) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockReplacementAssignments) SetStatus(_ context.Context, id string, status models.AssignmentStatus) error {
	m.statuses[id] = status
	return nil
}

func (m *mockReplacementAssignments) Reassign(_ context.Context, id, employeeID string) error {
	m.reassigned[id] = employeeID
	return nil
}

func seedReplacementAssignment(assignments *mockReplacementAssignments) *models.Assignment {
	assignment := &models.Assignment{
		ID:          "asg-1",
		EmployeeID:  "emp-1",
		ShiftTypeID: "shift-1",
		Date:        time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:      models.AssignmentPlanned,
		Origin:      models.OriginAuto,
	}
	assignments.assignments[assignment.ID] = assignment
	return assignment
}

func TestReplacementRequestFlagsAssignment(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	seedReplacementAssignment(assignments)
	svc := NewReplacementService(repo, assignments, nil, nil)

	item, err := svc.Request(context.Background(), "emp-1", dto.CreateReplacementRequest{
		AssignmentID: "asg-1",
		Reason:       "medical appointment",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReplacementPending, item.Status)
	assert.Equal(t, "shift-1", item.ShiftTypeID)
	assert.Equal(t, models.AssignmentReplacementRequested, assignments.statuses["asg-1"])
}

func TestReplacementRequestRejectsForeignAssignment(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	seedReplacementAssignment(assignments)
	svc := NewReplacementService(repo, assignments, nil, nil)

	_, err := svc.Request(context.Background(), "emp-2", dto.CreateReplacementRequest{
		AssignmentID: "asg-1",
		Reason:       "family emergency",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestReplacementRequestUnknownAssignment(t *testing.T) {
	svc := NewReplacementService(newMockReplacementRepo(), newMockReplacementAssignments(), nil, nil)

	_, err := svc.Request(context.Background(), "emp-1", dto.CreateReplacementRequest{
		AssignmentID: "missing",
		Reason:       "sick leave",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestReplacementDecideApproveReassigns(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	seedReplacementAssignment(assignments)
	repo.items["req-1"] = &models.ReplacementRequest{
		ID:           "req-1",
		AssignmentID: "asg-1",
		RequesterID:  "emp-1",
		Date:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:       models.ReplacementPending,
	}
	svc := NewReplacementService(repo, assignments, nil, nil)

	replacement := "emp-2"
	item, err := svc.Decide(context.Background(), "req-1", dto.DecideReplacementRequest{
		Approve:       true,
		ReplacementID: &replacement,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReplacementApproved, item.Status)
	assert.Equal(t, "emp-2", assignments.reassigned["asg-1"])
}

func TestReplacementDecideRejectsBusyReplacement(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	seedReplacementAssignment(assignments)
	assignments.assignments["asg-2"] = &models.Assignment{
		ID:          "asg-2",
		EmployeeID:  "emp-2",
		ShiftTypeID: "shift-2",
		Date:        time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:      models.AssignmentPlanned,
		Origin:      models.OriginAuto,
	}
	repo.items["req-1"] = &models.ReplacementRequest{
		ID:           "req-1",
		AssignmentID: "asg-1",
		RequesterID:  "emp-1",
		Date:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:       models.ReplacementPending,
	}
	svc := NewReplacementService(repo, assignments, nil, nil)

	replacement := "emp-2"
	_, err := svc.Decide(context.Background(), "req-1", dto.DecideReplacementRequest{
		Approve:       true,
		ReplacementID: &replacement,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDoubleBooked.Code, appErr.Code)
	assert.Empty(t, assignments.reassigned)
	assert.Empty(t, repo.statusCalls)
}

func TestReplacementDecideRefuseRestoresAssignment(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	seedReplacementAssignment(assignments)
	repo.items["req-1"] = &models.ReplacementRequest{
		ID:           "req-1",
		AssignmentID: "asg-1",
		RequesterID:  "emp-1",
		Status:       models.ReplacementPending,
	}
	svc := NewReplacementService(repo, assignments, nil, nil)

	item, err := svc.Decide(context.Background(), "req-1", dto.DecideReplacementRequest{Approve: false})
	require.NoError(t, err)
	assert.Equal(t, models.ReplacementRefused, item.Status)
	assert.Empty(t, assignments.reassigned)
	assert.Equal(t, models.AssignmentConfirmed, assignments.statuses["asg-1"])
}

func TestReplacementDecideAlreadyDecided(t *testing.T) {
	repo := newMockReplacementRepo()
	assignments := newMockReplacementAssignments()
	repo.items["req-1"] = &models.ReplacementRequest{
		ID:           "req-1",
		AssignmentID: "asg-1",
		Status:       models.ReplacementApproved,
	}
	svc := NewReplacementService(repo, assignments, nil, nil)

	_, err := svc.Decide(context.Background(), "req-1", dto.DecideReplacementRequest{Approve: true})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}
