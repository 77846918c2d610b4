package models

import "time"

// ScheduleStatus represents lifecycle phases for saved schedules.
type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "DRAFT"
	ScheduleStatusSubmitted ScheduleStatus = "SUBMITTED"
)

// StudentSchedule is a persisted set of chosen sections for a student-term
// pair. The engine never mutates these; they are re-validated on demand.
type StudentSchedule struct {
	ID        string         `db:"id" json:"id"`
	StudentID string         `db:"student_id" json:"student_id"`
	TermID    string         `db:"term_id" json:"term_id"`
	Name      string         `db:"name" json:"name"`
	Status    ScheduleStatus `db:"status" json:"status"`
	Score     float64        `db:"score" json:"score"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// ScheduleEntry links a saved schedule to one chosen section.
type ScheduleEntry struct {
	ID         string    `db:"id" json:"id"`
	ScheduleID string    `db:"schedule_id" json:"schedule_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	SectionID  string    `db:"section_id" json:"section_id"`
	Position   int       `db:"position" json:"position"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
