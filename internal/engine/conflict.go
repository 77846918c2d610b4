package engine

// Conflict records one overlapping meeting pair between two distinct
// sections.
type Conflict struct {
	SectionA string
	SectionB string
	CourseA  string
	CourseB  string
	MeetingA Meeting
	MeetingB Meeting
}

// ConflictReport lists every pairwise meeting overlap found in a set of
// sections. Produced on demand, never persisted.
type ConflictReport struct {
	Conflicts []Conflict
}

// Empty reports whether no conflicts were found.
func (r ConflictReport) Empty() bool {
	return len(r.Conflicts) == 0
}

// DetectConflicts tests every unordered pair of distinct sections and every
// meeting pair within them, collecting all overlaps rather than stopping at
// the first. Section counts per schedule are small, so the quadratic scan
// needs no indexing. Pure function; malformed meetings are rejected at
// construction, not here.
func DetectConflicts(sections []Section) ConflictReport {
	var report ConflictReport
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			report.Conflicts = append(report.Conflicts, sectionConflicts(sections[i], sections[j])...)
		}
	}
	return report
}

func sectionConflicts(a, b Section) []Conflict {
	var found []Conflict
	for _, ma := range a.Meetings {
		for _, mb := range b.Meetings {
			if Overlaps(ma, mb) {
				found = append(found, Conflict{
					SectionA: a.ID,
					SectionB: b.ID,
					CourseA:  a.CourseID,
					CourseB:  b.CourseID,
					MeetingA: ma,
					MeetingB: mb,
				})
			}
		}
	}
	return found
}

// conflictsWith reports whether section s overlaps any of the given
// sections. Used by the generator as its pruning oracle.
func conflictsWith(chosen []Section, s Section) bool {
	for _, existing := range chosen {
		if len(sectionConflicts(existing, s)) > 0 {
			return true
		}
	}
	return false
}
