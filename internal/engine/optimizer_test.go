package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedIDs(result OptimizeResult) [][]string {
	out := make([][]string, 0, len(result.Ranked))
	for _, r := range result.Ranked {
		var ids []string
		for _, a := range r.Candidate.Assignments {
			ids = append(ids, a.Section.ID)
		}
		out = append(out, ids)
	}
	return out
}

func optimizerFixture(t *testing.T) []RequiredCourse {
	t.Helper()
	return []RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101", Credits: 4}, Sections: []Section{
			section(t, "cs-morning", "c1", "Knuth", mustMeeting(t, "MWF", "09:00", "09:50")),
			section(t, "cs-evening", "c1", "Hoare", mustMeeting(t, "MWF", "19:00", "19:50")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201", Credits: 3}, Sections: []Section{
			section(t, "math-next", "c2", "Euler", mustMeeting(t, "MWF", "10:00", "10:50")),
			section(t, "math-late", "c2", "Gauss", mustMeeting(t, "MWF", "15:00", "15:50")),
		}},
	}
}

func TestOptimizeRejectsInvalidTopK(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	_, err = Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, 0)
	assert.ErrorIs(t, err, ErrInvalidTopK)

	_, err = Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, -3)
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestOptimizeRejectsUnknownPreference(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	_, err = Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		Weights: map[string]float64{"teleportation": 1},
	}, 3)
	assert.ErrorIs(t, err, ErrUnknownPreference)
}

func TestOptimizeTopKCapsAtAvailable(t *testing.T) {
	// A single viable combination returned even when topK asks for five.
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101", Credits: 4}, Sections: []Section{
			section(t, "s1", "c1", "", mustMeeting(t, "MWF", "09:00", "09:50")),
		}},
	})
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, 5)
	require.NoError(t, err)
	assert.Len(t, result.Ranked, 1)
	assert.False(t, result.Truncated)
}

func TestOptimizeEmptyWhenAllCombinationsConflict(t *testing.T) {
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101", Credits: 4}, Sections: []Section{
			section(t, "a1", "c1", "", mustMeeting(t, "M", "10:00", "11:00")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201", Credits: 3}, Sections: []Section{
			section(t, "b1", "c2", "", mustMeeting(t, "M", "10:30", "11:30")),
		}},
	})
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, 5)
	require.NoError(t, err)
	assert.Empty(t, result.Ranked, "infeasible input is an empty result, not an error")
}

func TestOptimizeGapMinimizationPrefersCompactDays(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		Weights: map[string]float64{PreferenceMinimizeGaps: 1},
	}, 4)
	require.NoError(t, err)
	require.NotEmpty(t, result.Ranked)
	assert.Equal(t, []string{"cs-morning", "math-next"}, rankedIDs(result)[0],
		"the back-to-back combination has the least idle time")
}

func TestOptimizeInstructorPreference(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		Weights:              map[string]float64{PreferencePreferredInstructors: 1},
		PreferredInstructors: []string{"Hoare", "Gauss"},
	}, 4)
	require.NoError(t, err)
	require.NotEmpty(t, result.Ranked)
	assert.Equal(t, []string{"cs-evening", "math-late"}, rankedIDs(result)[0])
	assert.InDelta(t, 1.0, result.Ranked[0].Score, 1e-9)
}

func TestOptimizeTimeOfDayPreference(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		Weights:           map[string]float64{PreferenceTimeOfDay: 1},
		IdealStartMinutes: 9 * 60,
		IdealEndMinutes:   12 * 60,
	}, 4)
	require.NoError(t, err)
	require.NotEmpty(t, result.Ranked)
	assert.Equal(t, []string{"cs-morning", "math-next"}, rankedIDs(result)[0],
		"morning sections sit inside the ideal window")
}

func TestOptimizeDeterministicIncludingTies(t *testing.T) {
	run := func() OptimizeResult {
		search, err := NewSearch(optimizerFixture(t))
		require.NoError(t, err)
		result, err := Optimize(context.Background(), search, ConstraintConfig{MaxCredits: 18}, PreferenceConfig{
			Weights: map[string]float64{
				PreferenceMinimizeGaps: 0.7,
				PreferenceTimeOfDay:    0.3,
			},
		}, 4)
		require.NoError(t, err)
		return result
	}

	assert.Equal(t, run(), run(), "identical inputs produce identical ranked output")
}

func TestOptimizeTieBreakUsesEnumerationOrder(t *testing.T) {
	// No weights: every candidate scores zero, so ranking must equal the
	// generator's deterministic DFS order.
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, 10)
	require.NoError(t, err)
	require.Len(t, result.Ranked, 4)
	for i := 1; i < len(result.Ranked); i++ {
		assert.Greater(t, result.Ranked[i].Candidate.Ordinal, result.Ranked[i-1].Candidate.Ordinal)
	}
}

func TestOptimizeTopKMonotonicity(t *testing.T) {
	run := func(topK int) OptimizeResult {
		search, err := NewSearch(optimizerFixture(t))
		require.NoError(t, err)
		result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
			Weights: map[string]float64{PreferenceMinimizeGaps: 1},
		}, topK)
		require.NoError(t, err)
		return result
	}

	small := run(2)
	large := run(4)
	require.Len(t, small.Ranked, 2)
	require.Len(t, large.Ranked, 4)
	assert.Equal(t, rankedIDs(small), rankedIDs(large)[:2],
		"growing topK only appends lower-ranked candidates")
}

func TestOptimizeHonoursMaxCandidates(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		MaxCandidates: 2,
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Explored)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Ranked, 2)
}

func TestOptimizeMaxCandidatesAtExactCountIsNotTruncated(t *testing.T) {
	// The fixture enumerates exactly four candidates. A cap equal to that
	// count still sees the full search space, so the result is complete.
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{
		MaxCandidates: 4,
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Explored)
	assert.False(t, result.Truncated, "cap reached on the last candidate is a complete enumeration")
}

func TestOptimizeCancelledContextReturnsPartialResults(t *testing.T) {
	search, err := NewSearch(optimizerFixture(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Optimize(ctx, search, ConstraintConfig{}, PreferenceConfig{}, 5)
	require.NoError(t, err, "cancellation is not a failure")
	assert.True(t, result.Truncated)
	assert.Empty(t, result.Ranked)
}

func TestOptimizePartialCandidatesRankBelowComplete(t *testing.T) {
	search, err := NewSearch([]RequiredCourse{
		{Course: Course{ID: "c1", Code: "CS 101", Credits: 4}, Sections: []Section{
			section(t, "a1", "c1", "", mustMeeting(t, "MWF", "09:00", "09:50")),
		}},
		{Course: Course{ID: "c2", Code: "MATH 201", Credits: 3}, Sections: []Section{
			section(t, "b1", "c2", "", mustMeeting(t, "TR", "09:00", "10:15")),
		}},
	}, WithPartialAssignments())
	require.NoError(t, err)

	result, err := Optimize(context.Background(), search, ConstraintConfig{}, PreferenceConfig{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Ranked)
	assert.True(t, result.Ranked[0].Candidate.Complete(),
		"full coverage outranks partial candidates regardless of score")
}
