package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/models"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type stubCatalog struct {
	courses  []models.Course
	total    int
	course   *models.Course
	findErr  error
	sections []models.Section
	meetings map[string][]models.Meeting
	subjects []string
}

func (s *stubCatalog) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	return s.courses, s.total, nil
}

func (s *stubCatalog) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.course, nil
}

func (s *stubCatalog) SectionsByCourse(ctx context.Context, courseID string) ([]models.Section, error) {
	return s.sections, nil
}

func (s *stubCatalog) MeetingsBySections(ctx context.Context, sectionIDs []string) (map[string][]models.Meeting, error) {
	return s.meetings, nil
}

func (s *stubCatalog) Subjects(ctx context.Context, termID string) ([]string, error) {
	return s.subjects, nil
}

func TestCourseList(t *testing.T) {
	catalog := &stubCatalog{
		courses: []models.Course{{ID: "c1", TermID: "FA26", Subject: "CS", CatalogNbr: "1110", Title: "Intro to Computing", Credits: 4}},
		total:   1,
	}
	svc := NewCourseService(catalog, nil, nil, 0)

	courses, pagination, err := svc.List(context.Background(), dto.CourseListQuery{TermID: "FA26"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS 1110", courses[0].Code)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}

func TestCourseGetWithSections(t *testing.T) {
	catalog := &stubCatalog{
		course: &models.Course{ID: "c1", TermID: "FA26", Subject: "CS", CatalogNbr: "1110", Title: "Intro to Computing", Credits: 4},
		sections: []models.Section{
			{ID: "s1", CourseID: "c1", SectionNbr: "001", Instructor: "Turing", Capacity: 30, Enrolled: 30},
		},
		meetings: map[string][]models.Meeting{
			"s1": {{ID: "m1", SectionID: "s1", Days: "MWF", StartTime: "09:00", EndTime: "09:50"}},
		},
	}
	svc := NewCourseService(catalog, nil, nil, 0)

	detail, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "CS 1110", detail.Code)
	require.Len(t, detail.Sections, 1)
	assert.False(t, detail.Sections[0].HasSeats)
	require.Len(t, detail.Sections[0].Meetings, 1)
	assert.Equal(t, "09:00", detail.Sections[0].Meetings[0].StartTime)
}

func TestCourseGetNotFound(t *testing.T) {
	svc := NewCourseService(&stubCatalog{findErr: sql.ErrNoRows}, nil, nil, 0)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
