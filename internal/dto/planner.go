package dto

// MeetingPayload renders one meeting pattern on the wire.
type MeetingPayload struct {
	Days      string `json:"days"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location,omitempty"`
}

// TimeWindowPayload is a caller-supplied blocked interval. Days may be empty
// to block the window on every day.
type TimeWindowPayload struct {
	Days      string `json:"days,omitempty"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ConstraintPayload enumerates the togglable hard constraints.
type ConstraintPayload struct {
	RequireAllCourses      bool                `json:"requireAllCourses"`
	MinCredits             float64             `json:"minCredits" validate:"omitempty,min=0"`
	MaxCredits             float64             `json:"maxCredits" validate:"omitempty,min=0"`
	ExcludedTimeWindows    []TimeWindowPayload `json:"excludedTimeWindows" validate:"omitempty,dive"`
	ExcludedInstructors    []string            `json:"excludedInstructors"`
	MaxConsecutiveMinutes  int                 `json:"maxConsecutiveMinutes" validate:"omitempty,min=0"`
	AllowSameCourseOverlap bool                `json:"allowSameCourseOverlap"`
}

// PreferencePayload selects and weights the soft scoring terms.
type PreferencePayload struct {
	Weights              map[string]float64 `json:"weights"`
	IdealStartTime       string             `json:"idealStartTime,omitempty"`
	IdealEndTime         string             `json:"idealEndTime,omitempty"`
	PreferredInstructors []string           `json:"preferredInstructors"`
	MaxCandidates        int                `json:"maxCandidates" validate:"omitempty,min=0"`
}

// OptimizePlanRequest asks for ranked conflict-free schedules covering the
// requested courses. Courses are searched in the order given.
type OptimizePlanRequest struct {
	TermID       string            `json:"termId" validate:"required"`
	CourseIDs    []string          `json:"courseIds" validate:"required,min=1,dive,required"`
	TopK         int               `json:"topK" validate:"omitempty,min=1"`
	AllowPartial *bool             `json:"allowPartial,omitempty"`
	Constraints  ConstraintPayload `json:"constraints"`
	Preferences  PreferencePayload `json:"preferences"`
}

// PlanSectionPayload is one chosen section inside a ranked candidate.
type PlanSectionPayload struct {
	CourseID   string           `json:"courseId"`
	CourseCode string           `json:"courseCode"`
	SectionID  string           `json:"sectionId"`
	Instructor string           `json:"instructor"`
	Credits    float64          `json:"credits"`
	Meetings   []MeetingPayload `json:"meetings"`
}

// PlanCandidatePayload is one ranked schedule candidate.
type PlanCandidatePayload struct {
	Rank           int                  `json:"rank"`
	Score          float64              `json:"score"`
	Terms          map[string]float64   `json:"terms,omitempty"`
	Complete       bool                 `json:"complete"`
	Credits        float64              `json:"credits"`
	Sections       []PlanSectionPayload `json:"sections"`
	SkippedCourses []string             `json:"skippedCourses,omitempty"`
}

// OptimizePlanResponse returns the ranked candidates plus search stats. The
// plan id references the cached proposal for a later save.
type OptimizePlanResponse struct {
	PlanID     string                 `json:"planId"`
	TermID     string                 `json:"termId"`
	Candidates []PlanCandidatePayload `json:"candidates"`
	Explored   int                    `json:"explored"`
	Truncated  bool                   `json:"truncated"`
}

// ValidateScheduleRequest validates either an explicit section list or a
// saved schedule against the hard constraints.
type ValidateScheduleRequest struct {
	TermID      string            `json:"termId" validate:"required_without=ScheduleID"`
	SectionIDs  []string          `json:"sectionIds" validate:"required_without=ScheduleID,omitempty,min=1,dive,required"`
	ScheduleID  string            `json:"scheduleId"`
	CourseIDs   []string          `json:"courseIds"`
	Constraints ConstraintPayload `json:"constraints"`
}

// ViolationPayload describes one violated hard constraint.
type ViolationPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConflictPayload describes one overlapping meeting pair.
type ConflictPayload struct {
	SectionA string         `json:"sectionA"`
	SectionB string         `json:"sectionB"`
	MeetingA MeetingPayload `json:"meetingA"`
	MeetingB MeetingPayload `json:"meetingB"`
}

// ValidateScheduleResponse carries the full violation picture so the caller
// can render actionable feedback.
type ValidateScheduleResponse struct {
	Valid      bool               `json:"valid"`
	Violations []ViolationPayload `json:"violations"`
	Conflicts  []ConflictPayload  `json:"conflicts,omitempty"`
}

// SavePlanRequest persists one ranked candidate from a cached plan.
type SavePlanRequest struct {
	PlanID string `json:"planId" validate:"required"`
	Rank   int    `json:"rank" validate:"min=1"`
	Name   string `json:"name"`
}

// SavePlanResponse returns the persisted schedule id.
type SavePlanResponse struct {
	ScheduleID string `json:"scheduleId"`
}
