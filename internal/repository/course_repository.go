package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/course-planner-api/internal/models"
)

// CourseRepository provides read access to the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = "id, term_id, subject, catalog_nbr, title, credits, created_at, updated_at"
const sectionColumns = "id, course_id, section_nbr, instructor, campus, capacity, enrolled, created_at"
const meetingColumns = "id, section_id, days, start_time, end_time, location, start_date, end_date"

// List returns catalog courses with optional filtering and pagination.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE term_id = $1"
	args := []interface{}{filter.TermID}

	if filter.Subject != "" {
		args = append(args, strings.ToUpper(filter.Subject))
		base += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		base += fmt.Sprintf(" AND (title ILIKE $%d OR subject || ' ' || catalog_nbr ILIKE $%d)", len(args), len(args))
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"subject":     true,
		"catalog_nbr": true,
		"title":       true,
		"credits":     true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "subject"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, catalog_nbr ASC LIMIT %d OFFSET %d", courseColumns, base, sortBy, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// FindByID loads a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDs loads the given courses, preserving the requested order. Missing
// ids are reported so callers can reject unknown course references.
func (r *CourseRepository) FindByIDs(ctx context.Context, termID string, ids []string) ([]models.Course, []string, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM courses WHERE term_id = ? AND id IN (?)", courseColumns), termID, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("build course lookup: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.Course
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, nil, fmt.Errorf("find courses by ids: %w", err)
	}

	byID := make(map[string]models.Course, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}

	ordered := make([]models.Course, 0, len(ids))
	var missing []string
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, c)
	}
	return ordered, missing, nil
}

// SectionsByCourse returns all sections of a course ordered by section number.
func (r *CourseRepository) SectionsByCourse(ctx context.Context, courseID string) ([]models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections WHERE course_id = $1 ORDER BY section_nbr ASC", sectionColumns)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, courseID); err != nil {
		return nil, fmt.Errorf("list sections for course %s: %w", courseID, err)
	}
	return sections, nil
}

// SectionsByIDs loads the given sections regardless of course.
func (r *CourseRepository) SectionsByIDs(ctx context.Context, ids []string) ([]models.Section, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM sections WHERE id IN (?)", sectionColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build section lookup: %w", err)
	}
	query = r.db.Rebind(query)

	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("find sections by ids: %w", err)
	}
	return sections, nil
}

// MeetingsBySections returns meetings for the given sections keyed by section id.
func (r *CourseRepository) MeetingsBySections(ctx context.Context, sectionIDs []string) (map[string][]models.Meeting, error) {
	if len(sectionIDs) == 0 {
		return map[string][]models.Meeting{}, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM meetings WHERE section_id IN (?) ORDER BY section_id, start_time", meetingColumns), sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("build meeting lookup: %w", err)
	}
	query = r.db.Rebind(query)

	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, args...); err != nil {
		return nil, fmt.Errorf("find meetings by sections: %w", err)
	}

	grouped := make(map[string][]models.Meeting, len(sectionIDs))
	for _, m := range meetings {
		grouped[m.SectionID] = append(grouped[m.SectionID], m)
	}
	return grouped, nil
}

// Snapshot loads the full course/section/meeting tree for the requested
// courses of a term. Sections are ordered by section number, so snapshot
// consumers see a stable enumeration order.
func (r *CourseRepository) Snapshot(ctx context.Context, termID string, courseIDs []string) (*models.TermSnapshot, []string, error) {
	courses, missing, err := r.FindByIDs(ctx, termID, courseIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(missing) > 0 {
		return nil, missing, nil
	}

	snapshot := &models.TermSnapshot{TermID: termID, LoadedAt: time.Now().UTC()}
	for _, course := range courses {
		sections, err := r.SectionsByCourse(ctx, course.ID)
		if err != nil {
			return nil, nil, err
		}

		sectionIDs := make([]string, 0, len(sections))
		for _, s := range sections {
			sectionIDs = append(sectionIDs, s.ID)
		}
		meetings, err := r.MeetingsBySections(ctx, sectionIDs)
		if err != nil {
			return nil, nil, err
		}

		detail := models.CourseDetail{Course: course}
		for _, s := range sections {
			detail.Sections = append(detail.Sections, models.SectionDetail{
				Section:  s,
				Meetings: meetings[s.ID],
			})
		}
		snapshot.Courses = append(snapshot.Courses, detail)
	}
	return snapshot, nil, nil
}

// Subjects returns the distinct subject codes offered in a term.
func (r *CourseRepository) Subjects(ctx context.Context, termID string) ([]string, error) {
	const query = `SELECT DISTINCT subject FROM courses WHERE term_id = $1 ORDER BY subject ASC`
	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects, query, termID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
