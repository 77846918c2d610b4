package engine

import "fmt"

// SearchOption customises a Search.
type SearchOption func(*Search)

// WithPartialAssignments lets the search skip a course when no section of it
// fits, yielding best-effort candidates. Skipped courses are reported on the
// candidate and rank below fuller ones.
func WithPartialAssignments() SearchOption {
	return func(s *Search) {
		s.allowPartial = true
	}
}

// Search enumerates conflict-free full assignments, one section per required
// course, by depth-first backtracking over the course list in the supplied
// order. Sections are tried in the supplied order, so identical inputs always
// yield identical output ordering. Iteration is pull-based and resumable:
// each Next call runs the search just far enough to produce one more
// candidate, and the cross-product is never materialised.
type Search struct {
	required     []RequiredCourse
	allowPartial bool

	choice  []int
	depth   int
	ordinal int
	done    bool
}

// NewSearch validates the request and positions the search before the first
// candidate. Every required course must offer at least one candidate section.
func NewSearch(required []RequiredCourse, opts ...SearchOption) (*Search, error) {
	if len(required) == 0 {
		return nil, ErrNoCourses
	}
	for _, rc := range required {
		if len(rc.Sections) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSections, rc.Course.Code)
		}
	}
	s := &Search{
		required: required,
		choice:   make([]int, len(required)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reset restarts the enumeration from the beginning.
func (s *Search) Reset() {
	for i := range s.choice {
		s.choice[i] = 0
	}
	s.depth = 0
	s.ordinal = 0
	s.done = false
}

// Next returns the next conflict-free candidate in deterministic DFS order,
// or false when the search space is exhausted. Partial consumption is always
// safe; no resources are held between calls.
func (s *Search) Next() (Candidate, bool) {
	if s.done {
		return Candidate{}, false
	}
	d := s.depth
	for {
		if d < 0 {
			s.done = true
			s.depth = d
			return Candidate{}, false
		}
		if d == len(s.required) {
			candidate := s.buildCandidate()
			// Backtrack one level so the next call resumes behind this
			// candidate instead of yielding it again.
			d--
			s.choice[d]++
			s.depth = d
			return candidate, true
		}
		if s.choice[d] >= s.branches(d) {
			s.choice[d] = 0
			d--
			if d >= 0 {
				s.choice[d]++
			}
			continue
		}
		if s.introducesConflict(d) {
			s.choice[d]++
			continue
		}
		d++
	}
}

// branches is the number of alternatives at a depth: one per candidate
// section, plus the trailing skip branch in partial mode.
func (s *Search) branches(depth int) int {
	n := len(s.required[depth].Sections)
	if s.allowPartial {
		n++
	}
	return n
}

func (s *Search) isSkip(depth, choice int) bool {
	return s.allowPartial && choice == len(s.required[depth].Sections)
}

// introducesConflict runs the conflict detector between the section picked
// at this depth and every section already chosen above it. This prunes
// infeasible branches before they are explored further.
func (s *Search) introducesConflict(depth int) bool {
	if s.isSkip(depth, s.choice[depth]) {
		return false
	}
	trial := s.required[depth].Sections[s.choice[depth]]
	for d := 0; d < depth; d++ {
		if s.isSkip(d, s.choice[d]) {
			continue
		}
		if conflictsWith([]Section{s.required[d].Sections[s.choice[d]]}, trial) {
			return true
		}
	}
	return false
}

func (s *Search) buildCandidate() Candidate {
	candidate := Candidate{Ordinal: s.ordinal}
	s.ordinal++
	for d, rc := range s.required {
		if s.isSkip(d, s.choice[d]) {
			candidate.Skipped = append(candidate.Skipped, rc.Course)
			continue
		}
		candidate.Assignments = append(candidate.Assignments, Assignment{
			Course:  rc.Course,
			Section: rc.Sections[s.choice[d]],
		})
	}
	return candidate
}

// Courses returns the required course list backing this search.
func (s *Search) Courses() []Course {
	courses := make([]Course, 0, len(s.required))
	for _, rc := range s.required {
		courses = append(courses, rc.Course)
	}
	return courses
}
