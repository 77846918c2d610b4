package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Violation codes reported by Evaluate.
const (
	ViolationTimeConflict       = "TIME_CONFLICT"
	ViolationMissingCourse      = "MISSING_COURSE"
	ViolationMaxCredits         = "MAX_CREDITS_EXCEEDED"
	ViolationMinCredits         = "MIN_CREDITS_NOT_MET"
	ViolationExcludedWindow     = "EXCLUDED_TIME_WINDOW"
	ViolationExcludedInstructor = "EXCLUDED_INSTRUCTOR"
	ViolationMaxConsecutive     = "MAX_CONSECUTIVE_EXCEEDED"
)

const defaultContiguityGapMinutes = 15

// TimeWindow is a caller-supplied blocked interval. A zero day set applies
// the window to every day.
type TimeWindow struct {
	Days  DaySet
	Start int
	End   int
}

func (w TimeWindow) blocks(m Meeting) bool {
	if w.Days != 0 && !w.Days.Intersects(m.Days) {
		return false
	}
	return m.Start < w.End && w.Start < m.End
}

// ConstraintConfig enumerates the hard constraints applied to a candidate.
// Each constraint is independently togglable; zero values disable the
// numeric bounds.
type ConstraintConfig struct {
	RequireAllCourses      bool
	MinCredits             float64
	MaxCredits             float64
	ExcludedTimeWindows    []TimeWindow
	ExcludedInstructors    []string
	MaxConsecutiveMinutes  int
	ContiguityGapMinutes   int
	AllowSameCourseOverlap bool
}

// Violation describes one violated hard constraint.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult reports whether a candidate satisfies every hard
// constraint, carrying the complete violation list so callers can render
// actionable feedback. Conflicts always come first.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
	Conflicts  []Conflict  `json:"-"`
}

// Evaluate checks a candidate against the hard constraints. required is the
// input course list used by RequireAllCourses; violations are collected, not
// short-circuited. A violated hard constraint always makes the candidate
// invalid regardless of the others.
func Evaluate(candidate Candidate, required []Course, cfg ConstraintConfig) ValidationResult {
	result := ValidationResult{Valid: true}

	conflicts := DetectConflicts(candidate.Sections()).Conflicts
	if cfg.AllowSameCourseOverlap {
		conflicts = dropSameCourse(conflicts)
	}
	for _, c := range conflicts {
		result.Violations = append(result.Violations, Violation{
			Code: ViolationTimeConflict,
			Message: fmt.Sprintf("sections %s and %s meet at the same time (%s %s-%s vs %s %s-%s)",
				c.SectionA, c.SectionB,
				c.MeetingA.Days, FormatClock(c.MeetingA.Start), FormatClock(c.MeetingA.End),
				c.MeetingB.Days, FormatClock(c.MeetingB.Start), FormatClock(c.MeetingB.End)),
		})
	}
	result.Conflicts = conflicts

	if cfg.RequireAllCourses {
		assigned := make(map[string]int, len(candidate.Assignments))
		for _, a := range candidate.Assignments {
			assigned[a.Course.ID]++
		}
		for _, course := range required {
			if assigned[course.ID] != 1 {
				result.Violations = append(result.Violations, Violation{
					Code:    ViolationMissingCourse,
					Message: fmt.Sprintf("course %s needs exactly one chosen section", course.Code),
				})
			}
		}
	}

	credits := candidate.Credits()
	if cfg.MaxCredits > 0 && credits > cfg.MaxCredits {
		result.Violations = append(result.Violations, Violation{
			Code:    ViolationMaxCredits,
			Message: fmt.Sprintf("total credits %.1f exceed the maximum %.1f", credits, cfg.MaxCredits),
		})
	}
	if cfg.MinCredits > 0 && credits < cfg.MinCredits {
		result.Violations = append(result.Violations, Violation{
			Code:    ViolationMinCredits,
			Message: fmt.Sprintf("total credits %.1f are below the minimum %.1f", credits, cfg.MinCredits),
		})
	}

	for _, a := range candidate.Assignments {
		for _, m := range a.Section.Meetings {
			for _, w := range cfg.ExcludedTimeWindows {
				if w.blocks(m) {
					result.Violations = append(result.Violations, Violation{
						Code: ViolationExcludedWindow,
						Message: fmt.Sprintf("section %s meets %s %s-%s inside the blocked window %s-%s",
							a.Section.ID, m.Days, FormatClock(m.Start), FormatClock(m.End),
							FormatClock(w.Start), FormatClock(w.End)),
					})
				}
			}
		}
	}

	if len(cfg.ExcludedInstructors) > 0 {
		blocked := make(map[string]struct{}, len(cfg.ExcludedInstructors))
		for _, name := range cfg.ExcludedInstructors {
			blocked[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
		}
		for _, a := range candidate.Assignments {
			if _, found := blocked[strings.ToLower(strings.TrimSpace(a.Section.Instructor))]; found {
				result.Violations = append(result.Violations, Violation{
					Code:    ViolationExcludedInstructor,
					Message: fmt.Sprintf("section %s is taught by excluded instructor %s", a.Section.ID, a.Section.Instructor),
				})
			}
		}
	}

	if cfg.MaxConsecutiveMinutes > 0 {
		gap := cfg.ContiguityGapMinutes
		if gap <= 0 {
			gap = defaultContiguityGapMinutes
		}
		for _, entry := range longestBlocksPerDay(candidate.Sections(), gap) {
			if entry.length > cfg.MaxConsecutiveMinutes {
				result.Violations = append(result.Violations, Violation{
					Code: ViolationMaxConsecutive,
					Message: fmt.Sprintf("%s has %d consecutive scheduled minutes, above the limit of %d",
						entry.day, entry.length, cfg.MaxConsecutiveMinutes),
				})
			}
		}
	}

	result.Valid = len(result.Violations) == 0
	return result
}

func dropSameCourse(conflicts []Conflict) []Conflict {
	kept := conflicts[:0:0]
	for _, c := range conflicts {
		if c.CourseA != c.CourseB {
			kept = append(kept, c)
		}
	}
	return kept
}

type dayBlock struct {
	day    DaySet
	length int
}

// longestBlocksPerDay merges a day's meetings into contiguous blocks,
// treating gaps of at most gapMinutes as part of the same block, and returns
// the longest block per day in week order.
func longestBlocksPerDay(sections []Section, gapMinutes int) []dayBlock {
	var result []dayBlock
	for _, day := range []DaySet{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		intervals := dayIntervals(sections, day)
		if len(intervals) == 0 {
			continue
		}
		longest := 0
		blockStart, blockEnd := intervals[0][0], intervals[0][1]
		for _, iv := range intervals[1:] {
			if iv[0]-blockEnd <= gapMinutes {
				if iv[1] > blockEnd {
					blockEnd = iv[1]
				}
				continue
			}
			if blockEnd-blockStart > longest {
				longest = blockEnd - blockStart
			}
			blockStart, blockEnd = iv[0], iv[1]
		}
		if blockEnd-blockStart > longest {
			longest = blockEnd - blockStart
		}
		result = append(result, dayBlock{day: day, length: longest})
	}
	return result
}

func dayIntervals(sections []Section, day DaySet) [][2]int {
	var intervals [][2]int
	for _, s := range sections {
		for _, m := range s.Meetings {
			if m.Days.Intersects(day) {
				intervals = append(intervals, [2]int{m.Start, m.End})
			}
		}
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i][0] == intervals[j][0] {
			return intervals[i][1] < intervals[j][1]
		}
		return intervals[i][0] < intervals[j][0]
	})
	return intervals
}
