package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/course-planner-api/internal/dto"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type stubScheduleResolver struct {
	schedule *dto.ScheduleResponse
	err      error
}

func (s *stubScheduleResolver) GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.schedule, nil
}

func exportFixture() *stubScheduleResolver {
	return &stubScheduleResolver{
		schedule: &dto.ScheduleResponse{
			ID:     "sch-1",
			TermID: "FA26",
			Name:   "Fall draft",
			Entries: []dto.ScheduleEntryResponse{
				{
					CourseCode: "CS 1110",
					Title:      "Intro to Computing",
					SectionNbr: "001",
					Instructor: "Turing",
					Credits:    4,
					Meetings: []dto.MeetingPayload{
						{Days: "MWF", StartTime: "09:00", EndTime: "09:50", Location: "Hall 101"},
					},
				},
			},
		},
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	file, err := svc.Export(context.Background(), "sch-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "schedule-sch-1.csv", file.Filename)

	body := strings.TrimPrefix(string(file.Data), "\xef\xbb\xbf")
	assert.True(t, strings.HasPrefix(body, "Course,Title,Section,Instructor,Credits,Meetings"))
	assert.Contains(t, body, "CS 1110")
	assert.Contains(t, body, "MWF 09:00-09:50 @ Hall 101")
}

func TestExportDefaultsToCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	file, err := svc.Export(context.Background(), "sch-1", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	file, err := svc.Export(context.Background(), "sch-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	_, err := svc.Export(context.Background(), "sch-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestExportPropagatesNotFound(t *testing.T) {
	svc := NewExportService(&stubScheduleResolver{err: appErrors.ErrNotFound}, nil, nil, nil)

	_, err := svc.Export(context.Background(), "missing", "csv")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
