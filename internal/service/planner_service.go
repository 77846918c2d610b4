package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/engine"
	"github.com/campushub/course-planner-api/internal/models"
	"github.com/campushub/course-planner-api/pkg/config"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type plannerCourseReader interface {
	Snapshot(ctx context.Context, termID string, courseIDs []string) (*models.TermSnapshot, []string, error)
	FindByIDs(ctx context.Context, termID string, ids []string) ([]models.Course, []string, error)
	SectionsByIDs(ctx context.Context, ids []string) ([]models.Section, error)
	MeetingsBySections(ctx context.Context, sectionIDs []string) (map[string][]models.Meeting, error)
}

type plannerScheduleStore interface {
	Create(ctx context.Context, schedule *models.StudentSchedule, entries []models.ScheduleEntry) error
	FindByID(ctx context.Context, id string) (*models.StudentSchedule, error)
	Entries(ctx context.Context, scheduleID string) ([]models.ScheduleEntry, error)
	ListByStudent(ctx context.Context, studentID, termID string) ([]models.StudentSchedule, error)
	UpdateStatus(ctx context.Context, id string, status models.ScheduleStatus) error
	Delete(ctx context.Context, id string) error
}

// PlannerService validates section selections and searches for ranked
// conflict-free schedules over the term catalog.
type PlannerService struct {
	courses   plannerCourseReader
	schedules plannerScheduleStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.PlannerConfig
	snapTTL   time.Duration
	store     *planStore
}

// NewPlannerService wires planner dependencies.
func NewPlannerService(
	courses plannerCourseReader,
	schedules plannerScheduleStore,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg config.PlannerConfig,
	snapTTL time.Duration,
) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 5
	}
	if cfg.PlanTTL <= 0 {
		cfg.PlanTTL = 30 * time.Minute
	}
	return &PlannerService{
		courses:   courses,
		schedules: schedules,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		snapTTL:   snapTTL,
		store:     newPlanStore(cfg.PlanTTL),
	}
}

// Validate checks an explicit section selection, or a saved schedule, against
// the hard constraints. Every violation is reported, not just the first.
func (s *PlannerService) Validate(ctx context.Context, req dto.ValidateScheduleRequest) (*dto.ValidateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid validation request")
	}

	termID := req.TermID
	sectionIDs := req.SectionIDs
	courseIDs := req.CourseIDs
	if req.ScheduleID != "" {
		schedule, err := s.schedules.FindByID(ctx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.NotFound("schedule not found")
			}
			return nil, err
		}
		entries, err := s.schedules.Entries(ctx, req.ScheduleID)
		if err != nil {
			return nil, err
		}
		termID = schedule.TermID
		sectionIDs = sectionIDs[:0]
		for _, e := range entries {
			sectionIDs = append(sectionIDs, e.SectionID)
		}
	}
	if len(sectionIDs) == 0 {
		return &dto.ValidateScheduleResponse{Valid: true, Violations: []dto.ViolationPayload{}}, nil
	}

	candidate, required, err := s.loadCandidate(ctx, termID, sectionIDs, courseIDs)
	if err != nil {
		return nil, err
	}

	cfg, err := s.constraintConfig(req.Constraints)
	if err != nil {
		return nil, err
	}

	result := engine.Evaluate(*candidate, required, cfg)
	s.metrics.RecordValidation(result.Valid)

	resp := &dto.ValidateScheduleResponse{
		Valid:      result.Valid,
		Violations: make([]dto.ViolationPayload, 0, len(result.Violations)),
	}
	for _, v := range result.Violations {
		resp.Violations = append(resp.Violations, dto.ViolationPayload{Code: v.Code, Message: v.Message})
	}
	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, dto.ConflictPayload{
			SectionA: c.SectionA,
			SectionB: c.SectionB,
			MeetingA: meetingPayload(c.MeetingA),
			MeetingB: meetingPayload(c.MeetingB),
		})
	}
	return resp, nil
}

// Optimize enumerates conflict-free schedules for the requested courses and
// returns the topK by preference score. The ranked proposal is cached under
// a plan id so one candidate can be persisted later without re-searching.
func (s *PlannerService) Optimize(ctx context.Context, studentID string, req dto.OptimizePlanRequest) (*dto.OptimizePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid optimization request")
	}

	snapshot, err := s.loadSnapshot(ctx, req.TermID, req.CourseIDs)
	if err != nil {
		return nil, err
	}

	required, err := snapshotToRequired(snapshot)
	if err != nil {
		return nil, err
	}

	allowPartial := s.cfg.AllowPartial
	if req.AllowPartial != nil {
		allowPartial = *req.AllowPartial
	}
	var opts []engine.SearchOption
	if allowPartial {
		opts = append(opts, engine.WithPartialAssignments())
	}
	search, err := engine.NewSearch(required, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, err.Error())
	}

	constraints, err := s.constraintConfig(req.Constraints)
	if err != nil {
		return nil, err
	}
	prefs, err := s.preferenceConfig(req.Preferences)
	if err != nil {
		return nil, err
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}

	searchCtx := ctx
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := engine.Optimize(searchCtx, search, constraints, prefs, topK)
	if err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, err.Error())
	}
	s.metrics.ObserveSearch(result.Explored, time.Since(start))

	planID := uuid.NewString()
	resp := &dto.OptimizePlanResponse{
		PlanID:     planID,
		TermID:     req.TermID,
		Candidates: make([]dto.PlanCandidatePayload, 0, len(result.Ranked)),
		Explored:   result.Explored,
		Truncated:  result.Truncated,
	}
	proposal := planProposal{
		PlanID:      planID,
		StudentID:   studentID,
		TermID:      req.TermID,
		RequestedAt: time.Now(),
	}
	for i, ranked := range result.Ranked {
		payload := candidatePayload(i+1, ranked)
		resp.Candidates = append(resp.Candidates, payload)
		proposal.Candidates = append(proposal.Candidates, plannedCandidate{
			Score:    ranked.Score,
			Sections: sectionRefs(ranked.Candidate),
		})
	}
	s.store.Save(proposal)

	s.logger.Info("schedule optimization completed",
		zap.String("term_id", req.TermID),
		zap.Int("courses", len(req.CourseIDs)),
		zap.Int("explored", result.Explored),
		zap.Int("ranked", len(result.Ranked)),
		zap.Bool("truncated", result.Truncated),
	)
	return resp, nil
}

// Save persists one ranked candidate from a previously returned plan.
func (s *PlannerService) Save(ctx context.Context, studentID string, req dto.SavePlanRequest) (*dto.SavePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid save request")
	}

	proposal, ok := s.store.Get(req.PlanID)
	if !ok {
		return nil, appErrors.NotFound("plan expired or unknown")
	}
	if proposal.StudentID != "" && proposal.StudentID != studentID {
		return nil, appErrors.ErrForbidden
	}
	if req.Rank < 1 || req.Rank > len(proposal.Candidates) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("rank %d out of range", req.Rank))
	}
	chosen := proposal.Candidates[req.Rank-1]

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Plan %s #%d", proposal.TermID, req.Rank)
	}
	schedule := &models.StudentSchedule{
		StudentID: studentID,
		TermID:    proposal.TermID,
		Name:      name,
		Status:    models.ScheduleStatusDraft,
		Score:     chosen.Score,
	}
	entries := make([]models.ScheduleEntry, 0, len(chosen.Sections))
	for _, ref := range chosen.Sections {
		entries = append(entries, models.ScheduleEntry{CourseID: ref.CourseID, SectionID: ref.SectionID})
	}
	start := time.Now()
	if err := s.schedules.Create(ctx, schedule, entries); err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("schedule_insert", time.Since(start))

	s.logger.Info("schedule saved",
		zap.String("schedule_id", schedule.ID),
		zap.String("student_id", studentID),
		zap.String("term_id", proposal.TermID),
		zap.Int("rank", req.Rank),
	)
	return &dto.SavePlanResponse{ScheduleID: schedule.ID}, nil
}

// GetSchedule resolves a saved schedule with its courses and meetings.
func (s *PlannerService) GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("schedule not found")
		}
		return nil, err
	}
	entries, err := s.schedules.Entries(ctx, id)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]string, 0, len(entries))
	courseIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		sectionIDs = append(sectionIDs, e.SectionID)
		courseIDs = append(courseIDs, e.CourseID)
	}
	sections, err := s.courses.SectionsByIDs(ctx, sectionIDs)
	if err != nil {
		return nil, err
	}
	meetings, err := s.courses.MeetingsBySections(ctx, sectionIDs)
	if err != nil {
		return nil, err
	}
	courses, _, err := s.courses.FindByIDs(ctx, schedule.TermID, courseIDs)
	if err != nil {
		return nil, err
	}

	sectionByID := make(map[string]models.Section, len(sections))
	for _, sec := range sections {
		sectionByID[sec.ID] = sec
	}
	courseByID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	resp := &dto.ScheduleResponse{
		ID:        schedule.ID,
		StudentID: schedule.StudentID,
		TermID:    schedule.TermID,
		Name:      schedule.Name,
		Status:    string(schedule.Status),
		CreatedAt: schedule.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, e := range entries {
		sec, ok := sectionByID[e.SectionID]
		if !ok {
			continue
		}
		course := courseByID[e.CourseID]
		entry := dto.ScheduleEntryResponse{
			CourseCode: course.Code(),
			Title:      course.Title,
			SectionNbr: sec.SectionNbr,
			Instructor: sec.Instructor,
			Credits:    course.Credits,
		}
		for _, m := range meetings[sec.ID] {
			entry.Meetings = append(entry.Meetings, dto.MeetingPayload{
				Days:      m.Days,
				StartTime: m.StartTime,
				EndTime:   m.EndTime,
				Location:  m.Location,
			})
		}
		resp.Credits += course.Credits
		resp.Entries = append(resp.Entries, entry)
	}
	return resp, nil
}

// ListSchedules returns the student's saved schedules for a term, newest
// first. Only headers are returned; GetSchedule resolves entries.
func (s *PlannerService) ListSchedules(ctx context.Context, studentID, termID string) ([]dto.ScheduleSummaryResponse, error) {
	schedules, err := s.schedules.ListByStudent(ctx, studentID, termID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleSummaryResponse, 0, len(schedules))
	for _, sched := range schedules {
		out = append(out, dto.ScheduleSummaryResponse{
			ID:        sched.ID,
			TermID:    sched.TermID,
			Name:      sched.Name,
			Status:    string(sched.Status),
			Score:     sched.Score,
			CreatedAt: sched.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// SubmitSchedule moves an owned draft schedule to the submitted state.
func (s *PlannerService) SubmitSchedule(ctx context.Context, studentID, id string) (*dto.SubmitScheduleResponse, error) {
	schedule, err := s.ownedSchedule(ctx, studentID, id)
	if err != nil {
		return nil, err
	}
	if schedule.Status == models.ScheduleStatusSubmitted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "schedule already submitted")
	}
	if err := s.schedules.UpdateStatus(ctx, id, models.ScheduleStatusSubmitted); err != nil {
		return nil, err
	}
	s.logger.Info("schedule submitted",
		zap.String("schedule_id", id),
		zap.String("student_id", studentID),
	)
	return &dto.SubmitScheduleResponse{ScheduleID: id, Status: string(models.ScheduleStatusSubmitted)}, nil
}

// DeleteSchedule removes an owned schedule together with its entries.
func (s *PlannerService) DeleteSchedule(ctx context.Context, studentID, id string) error {
	if _, err := s.ownedSchedule(ctx, studentID, id); err != nil {
		return err
	}
	if err := s.schedules.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("schedule deleted",
		zap.String("schedule_id", id),
		zap.String("student_id", studentID),
	)
	return nil
}

// ownedSchedule loads a schedule header and enforces that it belongs to
// the requesting student.
func (s *PlannerService) ownedSchedule(ctx context.Context, studentID, id string) (*models.StudentSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("schedule not found")
		}
		return nil, err
	}
	if schedule.StudentID != studentID {
		return nil, appErrors.ErrForbidden
	}
	return schedule, nil
}

// loadSnapshot fetches the course tree for an optimization request, going
// through the cache when enabled.
func (s *PlannerService) loadSnapshot(ctx context.Context, termID string, courseIDs []string) (*models.TermSnapshot, error) {
	key := snapshotKey(termID, courseIDs)
	var cached models.TermSnapshot
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	snapshot, missing, err := s.courses.Snapshot(ctx, termID, courseIDs)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("term_snapshot", time.Since(start))
	if len(missing) > 0 {
		return nil, appErrors.NotFound(fmt.Sprintf("unknown courses: %s", strings.Join(missing, ", ")))
	}
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, snapshot, s.snapTTL)
	}
	return snapshot, nil
}

// loadCandidate resolves explicit section ids into an engine candidate plus
// the course list the require-all check runs against.
func (s *PlannerService) loadCandidate(ctx context.Context, termID string, sectionIDs, courseIDs []string) (*engine.Candidate, []engine.Course, error) {
	start := time.Now()
	sections, err := s.courses.SectionsByIDs(ctx, sectionIDs)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.ObserveDBQuery("section_lookup", time.Since(start))
	found := make(map[string]models.Section, len(sections))
	for _, sec := range sections {
		found[sec.ID] = sec
	}
	var missing []string
	for _, id := range sectionIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, nil, appErrors.NotFound(fmt.Sprintf("unknown sections: %s", strings.Join(missing, ", ")))
	}

	meetings, err := s.courses.MeetingsBySections(ctx, sectionIDs)
	if err != nil {
		return nil, nil, err
	}

	wantCourses := courseIDs
	if len(wantCourses) == 0 {
		seen := make(map[string]bool)
		for _, id := range sectionIDs {
			cid := found[id].CourseID
			if !seen[cid] {
				seen[cid] = true
				wantCourses = append(wantCourses, cid)
			}
		}
	}
	courses, missingCourses, err := s.courses.FindByIDs(ctx, termID, wantCourses)
	if err != nil {
		return nil, nil, err
	}
	if len(missingCourses) > 0 {
		return nil, nil, appErrors.NotFound(fmt.Sprintf("unknown courses: %s", strings.Join(missingCourses, ", ")))
	}
	courseByID := make(map[string]models.Course, len(courses))
	required := make([]engine.Course, 0, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
		required = append(required, engineCourse(c))
	}

	candidate := &engine.Candidate{}
	for _, id := range sectionIDs {
		sec := found[id]
		course, ok := courseByID[sec.CourseID]
		if !ok {
			// Section belongs to a course outside the declared list; resolve
			// it so conflict reporting still names the course.
			extra, _, err := s.courses.FindByIDs(ctx, termID, []string{sec.CourseID})
			if err != nil {
				return nil, nil, err
			}
			if len(extra) == 0 {
				return nil, nil, appErrors.NotFound(fmt.Sprintf("unknown course for section %s", id))
			}
			course = extra[0]
			courseByID[course.ID] = course
		}
		engineSection, err := engineSectionFrom(course, sec, meetings[sec.ID])
		if err != nil {
			return nil, nil, err
		}
		candidate.Assignments = append(candidate.Assignments, engine.Assignment{
			Course:  engineCourse(course),
			Section: engineSection,
		})
	}
	return candidate, required, nil
}

func (s *PlannerService) constraintConfig(payload dto.ConstraintPayload) (engine.ConstraintConfig, error) {
	cfg := engine.ConstraintConfig{
		RequireAllCourses:      payload.RequireAllCourses,
		MinCredits:             payload.MinCredits,
		MaxCredits:             payload.MaxCredits,
		ExcludedInstructors:    payload.ExcludedInstructors,
		MaxConsecutiveMinutes:  payload.MaxConsecutiveMinutes,
		ContiguityGapMinutes:   s.cfg.ContiguityGapMinutes,
		AllowSameCourseOverlap: payload.AllowSameCourseOverlap,
	}
	for _, w := range payload.ExcludedTimeWindows {
		window := engine.TimeWindow{}
		if w.Days != "" {
			days, err := engine.ParseDays(w.Days)
			if err != nil {
				return cfg, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, fmt.Sprintf("invalid excluded window days %q", w.Days))
			}
			window.Days = days
		}
		start, err := engine.ParseClock(w.StartTime)
		if err != nil {
			return cfg, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, fmt.Sprintf("invalid excluded window start %q", w.StartTime))
		}
		end, err := engine.ParseClock(w.EndTime)
		if err != nil {
			return cfg, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, fmt.Sprintf("invalid excluded window end %q", w.EndTime))
		}
		if end <= start {
			return cfg, appErrors.Clone(appErrors.ErrValidation, "excluded window must end after it starts")
		}
		window.Start = start
		window.End = end
		cfg.ExcludedTimeWindows = append(cfg.ExcludedTimeWindows, window)
	}
	return cfg, nil
}

func (s *PlannerService) preferenceConfig(payload dto.PreferencePayload) (engine.PreferenceConfig, error) {
	prefs := engine.PreferenceConfig{
		Weights:              payload.Weights,
		PreferredInstructors: payload.PreferredInstructors,
		MaxCandidates:        payload.MaxCandidates,
	}
	if prefs.MaxCandidates <= 0 || (s.cfg.MaxCandidates > 0 && prefs.MaxCandidates > s.cfg.MaxCandidates) {
		prefs.MaxCandidates = s.cfg.MaxCandidates
	}
	if payload.IdealStartTime != "" {
		start, err := engine.ParseClock(payload.IdealStartTime)
		if err != nil {
			return prefs, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, fmt.Sprintf("invalid ideal start %q", payload.IdealStartTime))
		}
		prefs.IdealStartMinutes = start
	}
	if payload.IdealEndTime != "" {
		end, err := engine.ParseClock(payload.IdealEndTime)
		if err != nil {
			return prefs, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, fmt.Sprintf("invalid ideal end %q", payload.IdealEndTime))
		}
		prefs.IdealEndMinutes = end
	}
	return prefs, nil
}

func snapshotToRequired(snapshot *models.TermSnapshot) ([]engine.RequiredCourse, error) {
	required := make([]engine.RequiredCourse, 0, len(snapshot.Courses))
	for _, detail := range snapshot.Courses {
		rc := engine.RequiredCourse{Course: engineCourse(detail.Course)}
		for _, sd := range detail.Sections {
			section, err := engineSectionFrom(detail.Course, sd.Section, sd.Meetings)
			if err != nil {
				return nil, err
			}
			rc.Sections = append(rc.Sections, section)
		}
		required = append(required, rc)
	}
	return required, nil
}

func engineCourse(c models.Course) engine.Course {
	return engine.Course{ID: c.ID, Code: c.Code(), Title: c.Title, Credits: c.Credits}
}

func engineSectionFrom(course models.Course, section models.Section, meetings []models.Meeting) (engine.Section, error) {
	out := engine.Section{
		ID:         section.ID,
		CourseID:   course.ID,
		CourseCode: course.Code(),
		Instructor: section.Instructor,
	}
	for _, m := range meetings {
		meeting, err := engineMeeting(m)
		if err != nil {
			return engine.Section{}, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest,
				fmt.Sprintf("section %s has a malformed meeting", section.ID))
		}
		out.Meetings = append(out.Meetings, meeting)
	}
	return out, nil
}

func engineMeeting(m models.Meeting) (engine.Meeting, error) {
	days, err := engine.ParseDays(m.Days)
	if err != nil {
		return engine.Meeting{}, err
	}
	start, err := engine.ParseClock(m.StartTime)
	if err != nil {
		return engine.Meeting{}, err
	}
	end, err := engine.ParseClock(m.EndTime)
	if err != nil {
		return engine.Meeting{}, err
	}
	meeting, err := engine.NewMeeting(days, start, end)
	if err != nil {
		return engine.Meeting{}, err
	}
	meeting = meeting.WithLocation(m.Location)
	if m.StartDate != nil && m.EndDate != nil {
		meeting, err = meeting.WithDates(*m.StartDate, *m.EndDate)
		if err != nil {
			return engine.Meeting{}, err
		}
	}
	return meeting, nil
}

func meetingPayload(m engine.Meeting) dto.MeetingPayload {
	return dto.MeetingPayload{
		Days:      m.Days.String(),
		StartTime: engine.FormatClock(m.Start),
		EndTime:   engine.FormatClock(m.End),
		Location:  m.Location,
	}
}

func candidatePayload(rank int, ranked engine.RankedCandidate) dto.PlanCandidatePayload {
	payload := dto.PlanCandidatePayload{
		Rank:     rank,
		Score:    ranked.Score,
		Terms:    ranked.Terms,
		Complete: ranked.Candidate.Complete(),
		Credits:  ranked.Candidate.Credits(),
	}
	for _, a := range ranked.Candidate.Assignments {
		section := dto.PlanSectionPayload{
			CourseID:   a.Course.ID,
			CourseCode: a.Course.Code,
			SectionID:  a.Section.ID,
			Instructor: a.Section.Instructor,
			Credits:    a.Course.Credits,
		}
		for _, m := range a.Section.Meetings {
			section.Meetings = append(section.Meetings, meetingPayload(m))
		}
		payload.Sections = append(payload.Sections, section)
	}
	for _, skipped := range ranked.Candidate.Skipped {
		payload.SkippedCourses = append(payload.SkippedCourses, skipped.Code)
	}
	return payload
}

func snapshotKey(termID string, courseIDs []string) string {
	ids := append([]string(nil), courseIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("planner:snapshot:%s:%s", termID, strings.Join(ids, ","))
}

type sectionRef struct {
	CourseID  string
	SectionID string
}

func sectionRefs(candidate engine.Candidate) []sectionRef {
	refs := make([]sectionRef, 0, len(candidate.Assignments))
	for _, a := range candidate.Assignments {
		refs = append(refs, sectionRef{CourseID: a.Course.ID, SectionID: a.Section.ID})
	}
	return refs
}

type plannedCandidate struct {
	Score    float64
	Sections []sectionRef
}

type planProposal struct {
	PlanID      string
	StudentID   string
	TermID      string
	Candidates  []plannedCandidate
	RequestedAt time.Time
}

type planStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]planProposal
}

func newPlanStore(ttl time.Duration) *planStore {
	return &planStore{
		ttl:   ttl,
		items: make(map[string]planProposal),
	}
}

func (s *planStore) Save(proposal planProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.PlanID] = proposal
}

func (s *planStore) Get(id string) (planProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return planProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return planProposal{}, false
	}
	return proposal, true
}

func (s *planStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
