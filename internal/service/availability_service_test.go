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

type mockAvailabilityRepo struct {
	byEmployee map[string][]models.Availability
	replaced   map[string][]models.Availability
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{
		byEmployee: make(map[string][]models.Availability),
		replaced:   make(map[string][]models.Availability),
	}
}

func (m *mockAvailabilityRepo) ListByEmployee(_ context.Context, employeeID string) ([]models.Availability, error) {
	return m.byEmployee[employeeID], nil
}

func (m *mockAvailabilityRepo) ReplaceForEmployee(_ context.Context, employeeID string, items []models.Availability) error {
	m.byEmployee[employeeID] = items
	m.replaced[employeeID] = items
	return nil
}

type mockAvailabilityEmployees struct {
	known map[string]*models.Employee
}

func (m *mockAvailabilityEmployees) FindByID(_ context.Context, id string) (*models.Employee, error) {
	emp, ok := m.known[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return emp, nil
}

func TestAvailabilityReplace(t *testing.T) {
	repo := newMockAvailabilityRepo()
	employees := &mockAvailabilityEmployees{known: map[string]*models.Employee{
		"emp-1": {ID: "emp-1", EmploymentType: models.EmploymentPartTime},
	}}
	svc := NewAvailabilityService(repo, employees, nil, nil)

	items, err := svc.Replace(context.Background(), "emp-1", dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntry{
			{Date: "2024-06-03", StartTime: "06:00", EndTime: "18:00", Status: models.AvailabilityAvailable},
			{Date: "2024-06-04", Status: models.AvailabilityUnavailable},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), items[0].Date)
	assert.Equal(t, "emp-1", items[0].EmployeeID)
	assert.Len(t, repo.replaced["emp-1"], 2)
}

func TestAvailabilityReplaceUnknownEmployee(t *testing.T) {
	svc := NewAvailabilityService(newMockAvailabilityRepo(), &mockAvailabilityEmployees{known: map[string]*models.Employee{}}, nil, nil)

	_, err := svc.Replace(context.Background(), "ghost", dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntry{{Date: "2024-06-03", Status: models.AvailabilityAvailable}},
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAvailabilityReplaceRejectsBadEntries(t *testing.T) {
	repo := newMockAvailabilityRepo()
	employees := &mockAvailabilityEmployees{known: map[string]*models.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := NewAvailabilityService(repo, employees, nil, nil)

	_, err := svc.Replace(context.Background(), "emp-1", dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntry{{Date: "03/06/2024", Status: models.AvailabilityAvailable}},
	})
	require.Error(t, err)

	_, err = svc.Replace(context.Background(), "emp-1", dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntry{{Date: "2024-06-03", Status: "MAYBE"}},
	})
	require.Error(t, err)
	assert.Empty(t, repo.replaced)
}

func TestAvailabilityListByEmployee(t *testing.T) {
	repo := newMockAvailabilityRepo()
	repo.byEmployee["emp-1"] = []models.Availability{
		{ID: "av-1", EmployeeID: "emp-1", Status: models.AvailabilityAvailable},
	}
	svc := NewAvailabilityService(repo, &mockAvailabilityEmployees{}, nil, nil)

	items, err := svc.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "av-1", items[0].ID)
}
