package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/pkg/export"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type scheduleResolver interface {
	GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered schedule ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders saved schedules as downloadable CSV or PDF files.
type ExportService struct {
	schedules scheduleResolver
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleResolver, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{schedules: schedules, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, scheduleID, format string) (*ExportFile, error) {
	schedule, err := s.schedules.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	dataset := scheduleDataset(schedule)
	title := schedule.Name
	if title == "" {
		title = fmt.Sprintf("Schedule %s", schedule.TermID)
	}

	switch strings.ToLower(format) {
	case "csv", "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%s.csv", scheduleID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%s.pdf", scheduleID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func scheduleDataset(schedule *dto.ScheduleResponse) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Course", "Title", "Section", "Instructor", "Credits", "Meetings"},
	}
	for _, entry := range schedule.Entries {
		meetings := make([]string, 0, len(entry.Meetings))
		for _, m := range entry.Meetings {
			part := fmt.Sprintf("%s %s-%s", m.Days, m.StartTime, m.EndTime)
			if m.Location != "" {
				part += " @ " + m.Location
			}
			meetings = append(meetings, part)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":     entry.CourseCode,
			"Title":      entry.Title,
			"Section":    entry.SectionNbr,
			"Instructor": entry.Instructor,
			"Credits":    fmt.Sprintf("%.1f", entry.Credits),
			"Meetings":   strings.Join(meetings, "; "),
		})
	}
	return dataset
}
