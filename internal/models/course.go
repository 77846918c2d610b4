package models

import "time"

// Course represents reference course data for an academic term, synced from
// the student information system by an external process.
type Course struct {
	ID         string    `db:"id" json:"id"`
	TermID     string    `db:"term_id" json:"term_id"`
	Subject    string    `db:"subject" json:"subject"`
	CatalogNbr string    `db:"catalog_nbr" json:"catalog_nbr"`
	Title      string    `db:"title" json:"title"`
	Credits    float64   `db:"credits" json:"credits"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Code returns the human-facing course code, e.g. "CS 1110".
func (c Course) Code() string {
	return c.Subject + " " + c.CatalogNbr
}

// Section is one offered instance of a course within a term.
type Section struct {
	ID         string    `db:"id" json:"id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	SectionNbr string    `db:"section_nbr" json:"section_nbr"`
	Instructor string    `db:"instructor" json:"instructor"`
	Campus     string    `db:"campus" json:"campus"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Enrolled   int       `db:"enrolled" json:"enrolled"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// HasSeats reports whether the section still accepts enrollment.
func (s Section) HasSeats() bool {
	return s.Capacity == 0 || s.Enrolled < s.Capacity
}

// Meeting is one recurring time-slot pattern belonging to a section.
// Days uses SIS letter codes: M T W R F S U.
type Meeting struct {
	ID        string     `db:"id" json:"id"`
	SectionID string     `db:"section_id" json:"section_id"`
	Days      string     `db:"days" json:"days"`
	StartTime string     `db:"start_time" json:"start_time"`
	EndTime   string     `db:"end_time" json:"end_time"`
	Location  string     `db:"location" json:"location"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
}

// SectionDetail bundles a section with its meetings for snapshot consumers.
type SectionDetail struct {
	Section
	Meetings []Meeting `json:"meetings"`
}

// CourseDetail bundles a course with its sections, ordered by section number.
type CourseDetail struct {
	Course
	Sections []SectionDetail `json:"sections"`
}

// TermSnapshot is the read-only view of all offered courses for a term, held
// only for the duration of a validate/optimize call.
type TermSnapshot struct {
	TermID   string         `json:"term_id"`
	Courses  []CourseDetail `json:"courses"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// CourseFilter captures filtering criteria for browsing courses.
type CourseFilter struct {
	TermID    string
	Subject   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
