package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/models"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type catalogReader interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	SectionsByCourse(ctx context.Context, courseID string) ([]models.Section, error)
	MeetingsBySections(ctx context.Context, sectionIDs []string) (map[string][]models.Meeting, error)
	Subjects(ctx context.Context, termID string) ([]string, error)
}

// CourseService exposes read-only catalog browsing.
type CourseService struct {
	repo    catalogReader
	cache   *CacheService
	logger  *zap.Logger
	listTTL time.Duration
}

// NewCourseService constructs a course service.
func NewCourseService(repo catalogReader, cache *CacheService, logger *zap.Logger, listTTL time.Duration) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, logger: logger, listTTL: listTTL}
}

// List returns catalog courses matching the query.
func (s *CourseService) List(ctx context.Context, query dto.CourseListQuery) ([]dto.CourseResponse, *models.Pagination, error) {
	filter := models.CourseFilter{
		TermID:   query.TermID,
		Subject:  query.Subject,
		Search:   query.Keyword,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseResponse(c))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return out, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a course with its sections and meetings. Detail pages are
// cached briefly; catalog data only changes on sync.
func (s *CourseService) Get(ctx context.Context, id string) (*dto.CourseDetailResponse, error) {
	key := fmt.Sprintf("catalog:course:%s", id)
	var cached dto.CourseDetailResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("course not found")
		}
		return nil, err
	}

	sections, err := s.repo.SectionsByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	sectionIDs := make([]string, 0, len(sections))
	for _, sec := range sections {
		sectionIDs = append(sectionIDs, sec.ID)
	}
	meetings, err := s.repo.MeetingsBySections(ctx, sectionIDs)
	if err != nil {
		return nil, err
	}

	detail := &dto.CourseDetailResponse{CourseResponse: courseResponse(*course)}
	for _, sec := range sections {
		sr := dto.SectionResponse{
			ID:         sec.ID,
			SectionNbr: sec.SectionNbr,
			Instructor: sec.Instructor,
			Campus:     sec.Campus,
			Capacity:   sec.Capacity,
			Enrolled:   sec.Enrolled,
			HasSeats:   sec.HasSeats(),
		}
		for _, m := range meetings[sec.ID] {
			sr.Meetings = append(sr.Meetings, dto.MeetingPayload{
				Days:      m.Days,
				StartTime: m.StartTime,
				EndTime:   m.EndTime,
				Location:  m.Location,
			})
		}
		detail.Sections = append(detail.Sections, sr)
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, detail, s.listTTL)
	}
	return detail, nil
}

// Subjects lists the distinct subject codes offered in a term.
func (s *CourseService) Subjects(ctx context.Context, termID string) ([]string, error) {
	return s.repo.Subjects(ctx, termID)
}

func courseResponse(c models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:         c.ID,
		TermID:     c.TermID,
		Code:       c.Code(),
		Subject:    c.Subject,
		CatalogNbr: c.CatalogNbr,
		Title:      c.Title,
		Credits:    c.Credits,
	}
}
