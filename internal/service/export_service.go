package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportAssignmentReader interface {
	ListDetailByDateRange(ctx context.Context, from, to time.Time) ([]models.AssignmentDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered file streamed back to the caller.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders weekly rosters as downloadable files.
type ExportService struct {
	assignments exportAssignmentReader
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(assignments exportAssignmentReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{assignments: assignments, csv: csv, pdf: pdf, logger: logger}
}

// WeeklyRoster renders the roster of the week starting at weekStart.
func (s *ExportService) WeeklyRoster(ctx context.Context, weekStartRaw string, format ExportFormat) (*ExportResult, error) {
	weekStart, err := time.Parse(models.DateLayout, weekStartRaw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid week start, expected YYYY-MM-DD")
	}
	if weekStart.Weekday() != time.Monday {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week start must be a Monday")
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	assignments, err := s.assignments.ListDetailByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	dataset := buildRosterDataset(assignments)
	title := fmt.Sprintf("Roster %s to %s", weekStartRaw, weekEnd.Format(models.DateLayout))

	var payload []byte
	var contentType, extension string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType, extension = "text/csv", "csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType, extension = "application/pdf", "pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("weekly roster exported",
		zap.String("week_start", weekStartRaw),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &ExportResult{
		Filename:    fmt.Sprintf("roster-%s.%s", weekStartRaw, extension),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildRosterDataset(assignments []models.AssignmentDetail) export.Dataset {
	headers := []string{"Date", "Shift", "Employee", "Rank", "Origin", "Status"}
	rows := make([]map[string]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, map[string]string{
			"Date":     a.DateKey(),
			"Shift":    a.ShiftTypeName,
			"Employee": a.EmployeeName,
			"Rank":     string(a.EmployeeRank),
			"Origin":   string(a.Origin),
			"Status":   string(a.Status),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
