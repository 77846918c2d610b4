package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateOf(assignments ...Assignment) Candidate {
	return Candidate{Assignments: assignments}
}

func assign(course Course, sec Section) Assignment {
	return Assignment{Course: course, Section: sec}
}

func violationCodes(result ValidationResult) []string {
	codes := make([]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func TestEvaluateValidCandidate(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	math := Course{ID: "c2", Code: "MATH 201", Credits: 3}
	candidate := candidateOf(
		assign(cs101, section(t, "s1", "c1", "Knuth", mustMeeting(t, "MWF", "10:00", "10:50"))),
		assign(math, section(t, "s2", "c2", "Euler", mustMeeting(t, "TR", "09:00", "10:15"))),
	)

	result := Evaluate(candidate, []Course{cs101, math}, ConstraintConfig{
		RequireAllCourses: true,
		MinCredits:        6,
		MaxCredits:        18,
	})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
}

func TestEvaluateConflictsComeFirst(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	math := Course{ID: "c2", Code: "MATH 201", Credits: 3}
	candidate := candidateOf(
		assign(cs101, section(t, "s1", "c1", "Knuth", mustMeeting(t, "M", "10:00", "11:00"))),
		assign(math, section(t, "s2", "c2", "Euler", mustMeeting(t, "M", "10:30", "11:30"))),
	)

	result := Evaluate(candidate, []Course{cs101, math}, ConstraintConfig{MinCredits: 12})
	require.False(t, result.Valid)
	codes := violationCodes(result)
	require.GreaterOrEqual(t, len(codes), 2)
	assert.Equal(t, ViolationTimeConflict, codes[0], "conflicts are reported before other violations")
	assert.Contains(t, codes, ViolationMinCredits)
}

func TestEvaluateRequireAllCourses(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	math := Course{ID: "c2", Code: "MATH 201", Credits: 3}
	candidate := candidateOf(
		assign(cs101, section(t, "s1", "c1", "Knuth", mustMeeting(t, "MWF", "10:00", "10:50"))),
	)

	result := Evaluate(candidate, []Course{cs101, math}, ConstraintConfig{RequireAllCourses: true})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ViolationMissingCourse}, violationCodes(result))
}

func TestEvaluateCreditBounds(t *testing.T) {
	heavy := Course{ID: "c1", Code: "ENGR 500", Credits: 20}
	candidate := candidateOf(
		assign(heavy, section(t, "s1", "c1", "", mustMeeting(t, "MWF", "10:00", "10:50"))),
	)

	result := Evaluate(candidate, nil, ConstraintConfig{MaxCredits: 18})
	assert.Equal(t, []string{ViolationMaxCredits}, violationCodes(result))

	result = Evaluate(candidate, nil, ConstraintConfig{MinCredits: 21})
	assert.Equal(t, []string{ViolationMinCredits}, violationCodes(result))
}

func TestEvaluateExcludedTimeWindow(t *testing.T) {
	// Blocked window 08:00-09:00, section meets Tuesday 08:30-09:20.
	bio := Course{ID: "c1", Code: "BIO 110", Credits: 4}
	candidate := candidateOf(
		assign(bio, section(t, "s1", "c1", "", mustMeeting(t, "T", "08:30", "09:20"))),
	)

	result := Evaluate(candidate, nil, ConstraintConfig{
		ExcludedTimeWindows: []TimeWindow{{Start: 8 * 60, End: 9 * 60}},
	})
	require.False(t, result.Valid)
	assert.Equal(t, []string{ViolationExcludedWindow}, violationCodes(result))

	// A window restricted to Monday does not block a Tuesday meeting.
	result = Evaluate(candidate, nil, ConstraintConfig{
		ExcludedTimeWindows: []TimeWindow{{Days: Monday, Start: 8 * 60, End: 9 * 60}},
	})
	assert.True(t, result.Valid)
}

func TestEvaluateExcludedWindowHalfOpen(t *testing.T) {
	bio := Course{ID: "c1", Code: "BIO 110", Credits: 4}
	candidate := candidateOf(
		assign(bio, section(t, "s1", "c1", "", mustMeeting(t, "T", "09:00", "09:50"))),
	)

	result := Evaluate(candidate, nil, ConstraintConfig{
		ExcludedTimeWindows: []TimeWindow{{Start: 8 * 60, End: 9 * 60}},
	})
	assert.True(t, result.Valid, "meeting starting when the blocked window ends is allowed")
}

func TestEvaluateExcludedInstructors(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	candidate := candidateOf(
		assign(cs101, section(t, "s1", "c1", "Dr. Moriarty", mustMeeting(t, "MWF", "10:00", "10:50"))),
	)

	result := Evaluate(candidate, nil, ConstraintConfig{
		ExcludedInstructors: []string{"dr. moriarty"},
	})
	assert.Equal(t, []string{ViolationExcludedInstructor}, violationCodes(result))
}

func TestEvaluateMaxConsecutiveMergesNearContiguousBlocks(t *testing.T) {
	cs := Course{ID: "c1", Code: "CS 101", Credits: 4}
	math := Course{ID: "c2", Code: "MATH 201", Credits: 3}
	phys := Course{ID: "c3", Code: "PHYS 121", Credits: 4}
	// Monday 09:00-10:00, 10:10-11:10, 11:20-12:20: ten-minute gaps merge
	// into a single 200-minute block.
	candidate := candidateOf(
		assign(cs, section(t, "s1", "c1", "", mustMeeting(t, "M", "09:00", "10:00"))),
		assign(math, section(t, "s2", "c2", "", mustMeeting(t, "M", "10:10", "11:10"))),
		assign(phys, section(t, "s3", "c3", "", mustMeeting(t, "M", "11:20", "12:20"))),
	)

	result := Evaluate(candidate, nil, ConstraintConfig{MaxConsecutiveMinutes: 180})
	assert.Equal(t, []string{ViolationMaxConsecutive}, violationCodes(result))

	// A one-hour lunch break splits the day into blocks under the limit.
	spread := candidateOf(
		assign(cs, section(t, "s1", "c1", "", mustMeeting(t, "M", "09:00", "10:00"))),
		assign(math, section(t, "s2", "c2", "", mustMeeting(t, "M", "10:10", "11:10"))),
		assign(phys, section(t, "s3", "c3", "", mustMeeting(t, "M", "12:30", "13:30"))),
	)
	result = Evaluate(spread, nil, ConstraintConfig{MaxConsecutiveMinutes: 180})
	assert.True(t, result.Valid)
}

func TestEvaluateSameCourseOverlapFlag(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	lecture := section(t, "s1", "c1", "", mustMeeting(t, "M", "10:00", "11:00"))
	linked := section(t, "s2", "c1", "", mustMeeting(t, "M", "10:00", "11:00"))
	candidate := candidateOf(assign(cs101, lecture), assign(cs101, linked))

	result := Evaluate(candidate, nil, ConstraintConfig{})
	assert.False(t, result.Valid, "same-course overlaps conflict by default")

	result = Evaluate(candidate, nil, ConstraintConfig{AllowSameCourseOverlap: true})
	assert.True(t, result.Valid, "linked sections may co-exist when allowed")
}

func TestEvaluateIdempotence(t *testing.T) {
	cs101 := Course{ID: "c1", Code: "CS 101", Credits: 4}
	math := Course{ID: "c2", Code: "MATH 201", Credits: 3}
	candidate := candidateOf(
		assign(cs101, section(t, "s1", "c1", "", mustMeeting(t, "M", "10:00", "11:00"))),
		assign(math, section(t, "s2", "c2", "", mustMeeting(t, "M", "10:30", "11:30"))),
	)
	cfg := ConstraintConfig{RequireAllCourses: true, MaxCredits: 18}

	first := Evaluate(candidate, []Course{cs101, math}, cfg)
	second := Evaluate(candidate, []Course{cs101, math}, cfg)
	assert.Equal(t, first, second)
}
