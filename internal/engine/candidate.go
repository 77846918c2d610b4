package engine

// Course identifies one required course in a planning request.
type Course struct {
	ID      string
	Code    string
	Title   string
	Credits float64
}

// Section is one offered instance of a course together with its meetings.
// Read-only to the engine.
type Section struct {
	ID         string
	CourseID   string
	CourseCode string
	Instructor string
	Meetings   []Meeting
}

// RequiredCourse pairs a course with its candidate sections in the order the
// caller wants them tried (typically SIS section-number order).
type RequiredCourse struct {
	Course   Course
	Sections []Section
}

// Assignment is one chosen section for one course.
type Assignment struct {
	Course  Course
	Section Section
}

// Candidate is an ordered assignment of sections to required courses. In
// partial mode some courses may be skipped; Skipped preserves them for
// reporting. Ordinal is the position within the deterministic enumeration
// and breaks score ties.
type Candidate struct {
	Assignments []Assignment
	Skipped     []Course
	Ordinal     int
}

// Sections returns the chosen sections in course order.
func (c Candidate) Sections() []Section {
	sections := make([]Section, 0, len(c.Assignments))
	for _, a := range c.Assignments {
		sections = append(sections, a.Section)
	}
	return sections
}

// Credits sums the credit hours of the assigned courses.
func (c Candidate) Credits() float64 {
	var total float64
	for _, a := range c.Assignments {
		total += a.Course.Credits
	}
	return total
}

// Coverage is the number of required courses that received a section.
func (c Candidate) Coverage() int {
	return len(c.Assignments)
}

// Complete reports whether every required course was assigned.
func (c Candidate) Complete() bool {
	return len(c.Skipped) == 0
}
