package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Search) []Candidate {
	var all []Candidate
	for {
		candidate, ok := s.Next()
		if !ok {
			return all
		}
		all = append(all, candidate)
	}
}

func TestNewSearchRejectsMalformedInput(t *testing.T) {
	_, err := NewSearch(nil)
	assert.ErrorIs(t, err, ErrNoCourses)

	_, err = NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}},
	})
	assert.ErrorIs(t, err, ErrNoSections)
}

func TestSearchSingleSectionPerCourse(t *testing.T) {
	// Three courses with one non-overlapping section each yield exactly one
	// candidate.
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
			section(t, "s1", "c1", "", mustMeeting(t, "MWF", "09:00", "09:50")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
			section(t, "s2", "c2", "", mustMeeting(t, "MWF", "10:00", "10:50")),
		}},
		{Course: Course{ID: "c3", Code: "PHYS 121"}, Sections: []Section{
			section(t, "s3", "c3", "", mustMeeting(t, "TR", "09:00", "10:15")),
		}},
	})
	require.NoError(t, err)

	candidates := drain(search)
	require.Len(t, candidates, 1)
	assert.Equal(t, 3, candidates[0].Coverage())
	assert.True(t, candidates[0].Complete())
}

func TestSearchPrunesConflictingBranches(t *testing.T) {
	// The second course offers three sections; two collide with the fixed
	// first course, so only the non-conflicting branch survives.
	fixed := section(t, "anchor", "c1", "", mustMeeting(t, "MWF", "10:00", "10:50"))
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{fixed}},
		{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
			section(t, "clash-a", "c2", "", mustMeeting(t, "M", "10:30", "11:20")),
			section(t, "clash-b", "c2", "", mustMeeting(t, "W", "10:00", "10:50")),
			section(t, "free", "c2", "", mustMeeting(t, "TR", "08:00", "09:15")),
		}},
	})
	require.NoError(t, err)

	candidates := drain(search)
	require.Len(t, candidates, 1)
	assert.Equal(t, "free", candidates[0].Assignments[1].Section.ID)
}

func TestSearchYieldsOnlyConflictFreeCandidates(t *testing.T) {
	// Soundness of pruning: every yielded candidate passes the conflict
	// detector.
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
			section(t, "a1", "c1", "", mustMeeting(t, "MWF", "09:00", "09:50")),
			section(t, "a2", "c1", "", mustMeeting(t, "MWF", "10:00", "10:50")),
			section(t, "a3", "c1", "", mustMeeting(t, "TR", "09:00", "10:15")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
			section(t, "b1", "c2", "", mustMeeting(t, "MWF", "09:00", "09:50")),
			section(t, "b2", "c2", "", mustMeeting(t, "MWF", "11:00", "11:50")),
		}},
		{Course: Course{ID: "c3", Code: "PHYS 121"}, Sections: []Section{
			section(t, "d1", "c3", "", mustMeeting(t, "TR", "09:00", "10:15")),
			section(t, "d2", "c3", "", mustMeeting(t, "MW", "09:30", "10:20")),
		}},
	})
	require.NoError(t, err)

	candidates := drain(search)
	require.NotEmpty(t, candidates)
	for _, candidate := range candidates {
		assert.True(t, DetectConflicts(candidate.Sections()).Empty(),
			"candidate %d must be conflict-free", candidate.Ordinal)
	}
}

func TestSearchDeterministicOrderAndReset(t *testing.T) {
	build := func() *Search {
		search, err := NewSearch([]RequiredCourse{
			{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
				section(t, "a1", "c1", "", mustMeeting(t, "MWF", "09:00", "09:50")),
				section(t, "a2", "c1", "", mustMeeting(t, "TR", "09:00", "10:15")),
			}},
			{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
				section(t, "b1", "c2", "", mustMeeting(t, "MWF", "11:00", "11:50")),
				section(t, "b2", "c2", "", mustMeeting(t, "TR", "11:00", "12:15")),
			}},
		})
		require.NoError(t, err)
		return search
	}

	first := drain(build())
	second := drain(build())
	assert.Equal(t, first, second, "identical inputs yield identical enumeration")

	search := build()
	before := drain(search)
	search.Reset()
	after := drain(search)
	assert.Equal(t, before, after, "Reset restarts the sequence")
}

func TestSearchSectionsTriedInSuppliedOrder(t *testing.T) {
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
			section(t, "first", "c1", "", mustMeeting(t, "M", "09:00", "09:50")),
			section(t, "second", "c1", "", mustMeeting(t, "T", "09:00", "09:50")),
		}},
	})
	require.NoError(t, err)

	candidates := drain(search)
	require.Len(t, candidates, 2)
	assert.Equal(t, "first", candidates[0].Assignments[0].Section.ID)
	assert.Equal(t, "second", candidates[1].Assignments[0].Section.ID)
	assert.Equal(t, 0, candidates[0].Ordinal)
	assert.Equal(t, 1, candidates[1].Ordinal)
}

func TestSearchExhaustedWhenAllCombinationsConflict(t *testing.T) {
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
			section(t, "a1", "c1", "", mustMeeting(t, "M", "10:00", "11:00")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
			section(t, "b1", "c2", "", mustMeeting(t, "M", "10:00", "11:00")),
			section(t, "b2", "c2", "", mustMeeting(t, "M", "10:30", "11:30")),
		}},
	})
	require.NoError(t, err)

	assert.Empty(t, drain(search))
}

func TestSearchPartialAssignments(t *testing.T) {
	// Without partial mode the clash yields nothing; with it, the search
	// skips the unplaceable course and still covers the other.
	required := []RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101"}, Sections: []Section{
			section(t, "a1", "c1", "", mustMeeting(t, "M", "10:00", "11:00")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201"}, Sections: []Section{
			section(t, "b1", "c2", "", mustMeeting(t, "M", "10:00", "11:00")),
		}},
	}

	strict, err := NewSearch(required)
	require.NoError(t, err)
	assert.Empty(t, drain(strict))

	relaxed, err := NewSearch(required, WithPartialAssignments())
	require.NoError(t, err)
	candidates := drain(relaxed)
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.Equal(t, 1, best.Coverage())
	assert.False(t, best.Complete())
	assert.Len(t, best.Skipped, 1)
}
