package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type stubExportAssignments struct {
	items []models.AssignmentDetail
}

func (s *stubExportAssignments) ListDetailByDateRange(ctx context.Context, from, to time.Time) ([]models.AssignmentDetail, error) {
	return s.items, nil
}

func exportFixtureAssignments(t *testing.T) []models.AssignmentDetail {
	t.Helper()
	monday := mustDate(t, "2024-06-03")
	return []models.AssignmentDetail{
		{
			Assignment: models.Assignment{
				ID: "a-1", EmployeeID: "emp-1", ShiftTypeID: "st-am",
				Date: monday, Origin: models.OriginAuto, Status: models.AssignmentPlanned,
			},
			EmployeeName:  "Jean Dupuis",
			EmployeeRank:  models.RankCaptain,
			ShiftTypeName: "AM",
		},
		{
			Assignment: models.Assignment{
				ID: "a-2", EmployeeID: "emp-2", ShiftTypeID: "st-pm",
				Date: monday.AddDate(0, 0, 1), Origin: models.OriginManual, Status: models.AssignmentConfirmed,
			},
			EmployeeName:  "Marie Tremblay",
			EmployeeRank:  models.RankFirefighter,
			ShiftTypeName: "PM",
		},
	}
}

func TestWeeklyRosterCSV(t *testing.T) {
	svc := NewExportService(&stubExportAssignments{items: exportFixtureAssignments(t)}, nil, nil, zap.NewNop())

	result, err := svc.WeeklyRoster(context.Background(), "2024-06-03", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "roster-2024-06-03.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, string(result.Payload), "Jean Dupuis")
	assert.Contains(t, string(result.Payload), "2024-06-04")
}

func TestWeeklyRosterPDF(t *testing.T) {
	svc := NewExportService(&stubExportAssignments{items: exportFixtureAssignments(t)}, nil, nil, zap.NewNop())

	result, err := svc.WeeklyRoster(context.Background(), "2024-06-03", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "roster-2024-06-03.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestWeeklyRosterRejectsBadInput(t *testing.T) {
	svc := NewExportService(&stubExportAssignments{}, nil, nil, zap.NewNop())

	_, err := svc.WeeklyRoster(context.Background(), "2024-06-04", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.WeeklyRoster(context.Background(), "2024-06-03", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
