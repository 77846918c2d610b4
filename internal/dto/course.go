package dto

// CourseListQuery filters the course catalog listing.
type CourseListQuery struct {
	TermID   string `form:"termId" validate:"required"`
	Subject  string `form:"subject"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// SectionResponse is a catalog section with its meeting patterns.
type SectionResponse struct {
	ID         string           `json:"id"`
	SectionNbr string           `json:"sectionNbr"`
	Instructor string           `json:"instructor"`
	Campus     string           `json:"campus,omitempty"`
	Capacity   int              `json:"capacity"`
	Enrolled   int              `json:"enrolled"`
	HasSeats   bool             `json:"hasSeats"`
	Meetings   []MeetingPayload `json:"meetings"`
}

// CourseResponse is a catalog course row.
type CourseResponse struct {
	ID         string  `json:"id"`
	TermID     string  `json:"termId"`
	Code       string  `json:"code"`
	Subject    string  `json:"subject"`
	CatalogNbr string  `json:"catalogNbr"`
	Title      string  `json:"title"`
	Credits    float64 `json:"credits"`
}

// CourseDetailResponse is a course with all of its sections expanded.
type CourseDetailResponse struct {
	CourseResponse
	Sections []SectionResponse `json:"sections"`
}

// ScheduleListQuery filters a student's saved schedules.
type ScheduleListQuery struct {
	TermID string `form:"termId" validate:"required"`
}

// ScheduleSummaryResponse is a saved schedule header without its entries.
type ScheduleSummaryResponse struct {
	ID        string  `json:"id"`
	TermID    string  `json:"termId"`
	Name      string  `json:"name,omitempty"`
	Status    string  `json:"status"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"createdAt"`
}

// SubmitScheduleResponse acknowledges a draft submission.
type SubmitScheduleResponse struct {
	ScheduleID string `json:"scheduleId"`
	Status     string `json:"status"`
}

// ScheduleEntryResponse is one persisted schedule line.
type ScheduleEntryResponse struct {
	CourseCode string           `json:"courseCode"`
	Title      string           `json:"title"`
	SectionNbr string           `json:"sectionNbr"`
	Instructor string           `json:"instructor"`
	Credits    float64          `json:"credits"`
	Meetings   []MeetingPayload `json:"meetings"`
}

// ScheduleResponse is a saved schedule with its entries.
type ScheduleResponse struct {
	ID        string                  `json:"id"`
	StudentID string                  `json:"studentId"`
	TermID    string                  `json:"termId"`
	Name      string                  `json:"name,omitempty"`
	Status    string                  `json:"status"`
	Credits   float64                 `json:"credits"`
	CreatedAt string                  `json:"createdAt"`
	Entries   []ScheduleEntryResponse `json:"entries"`
}
