package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Preference term names registered by default.
const (
	PreferenceMinimizeGaps         = "minimize_gaps"
	PreferenceTimeOfDay            = "time_of_day"
	PreferencePreferredInstructors = "preferred_instructors"
)

// ScoreFunc scores one candidate in [0,1]. Higher is better.
type ScoreFunc func(Candidate) float64

// ScoreBuilder produces a ScoreFunc bound to a preference configuration.
type ScoreBuilder func(PreferenceConfig) ScoreFunc

var (
	registryMu sync.RWMutex
	registry   = map[string]ScoreBuilder{}
)

// RegisterPreference adds a named scoring term. Built-in terms are
// registered at package init; embedders may add their own before use.
func RegisterPreference(name string, builder ScoreBuilder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = builder
}

func init() {
	RegisterPreference(PreferenceMinimizeGaps, buildGapScore)
	RegisterPreference(PreferenceTimeOfDay, buildTimeOfDayScore)
	RegisterPreference(PreferencePreferredInstructors, buildInstructorScore)
}

// PreferenceConfig selects and parameterises the soft scoring terms.
// Weights maps registered term names to non-negative weights; terms absent
// from the map do not contribute. MaxCandidates bounds how many generated
// candidates the ranker will consider (0 = unbounded).
type PreferenceConfig struct {
	Weights              map[string]float64
	IdealStartMinutes    int
	IdealEndMinutes      int
	PreferredInstructors []string
	MaxCandidates        int
}

// RankedCandidate pairs a candidate with its composite score and the
// normalized per-term contributions.
type RankedCandidate struct {
	Candidate Candidate
	Score     float64
	Terms     map[string]float64
}

// OptimizeResult is the ranked outcome of a search.
type OptimizeResult struct {
	Ranked    []RankedCandidate
	Explored  int
	Truncated bool
}

// Optimize consumes the search, filters candidates through the hard
// constraints, scores the survivors as a weighted sum of normalized
// preference terms and returns the topK by descending score. Ties are broken
// by the generator's enumeration order, so identical inputs produce
// identical output. Fewer than topK valid candidates is not an error.
// Cancelling ctx stops consumption; candidates ranked so far are returned
// with Truncated set.
func Optimize(ctx context.Context, search *Search, constraints ConstraintConfig, prefs PreferenceConfig, topK int) (OptimizeResult, error) {
	if topK <= 0 {
		return OptimizeResult{}, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	scorers, err := buildScorers(prefs)
	if err != nil {
		return OptimizeResult{}, err
	}

	required := search.Courses()
	var result OptimizeResult
	for {
		if ctx.Err() != nil {
			result.Truncated = true
			break
		}
		if prefs.MaxCandidates > 0 && result.Explored >= prefs.MaxCandidates {
			// Only report truncation when the search actually had more to
			// offer; hitting the cap on the final candidate is a complete
			// enumeration.
			if _, more := search.Next(); more {
				result.Truncated = true
			}
			break
		}
		candidate, ok := search.Next()
		if !ok {
			break
		}
		result.Explored++
		if !Evaluate(candidate, required, constraints).Valid {
			continue
		}
		result.Ranked = append(result.Ranked, scoreCandidate(candidate, scorers))
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		a, b := result.Ranked[i], result.Ranked[j]
		if a.Candidate.Coverage() != b.Candidate.Coverage() {
			return a.Candidate.Coverage() > b.Candidate.Coverage()
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Candidate.Ordinal < b.Candidate.Ordinal
	})
	if len(result.Ranked) > topK {
		result.Ranked = result.Ranked[:topK]
	}
	return result, nil
}

type weightedScorer struct {
	name   string
	weight float64
	score  ScoreFunc
}

func buildScorers(prefs PreferenceConfig) ([]weightedScorer, error) {
	names := make([]string, 0, len(prefs.Weights))
	for name := range prefs.Weights {
		names = append(names, name)
	}
	sort.Strings(names)

	registryMu.RLock()
	defer registryMu.RUnlock()

	var scorers []weightedScorer
	for _, name := range names {
		weight := prefs.Weights[name]
		if weight <= 0 {
			continue
		}
		builder, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreference, name)
		}
		scorers = append(scorers, weightedScorer{name: name, weight: weight, score: builder(prefs)})
	}
	return scorers, nil
}

func scoreCandidate(candidate Candidate, scorers []weightedScorer) RankedCandidate {
	ranked := RankedCandidate{Candidate: candidate, Terms: make(map[string]float64, len(scorers))}
	var totalWeight float64
	for _, s := range scorers {
		term := clamp01(s.score(candidate))
		ranked.Terms[s.name] = term
		ranked.Score += s.weight * term
		totalWeight += s.weight
	}
	if totalWeight > 0 {
		ranked.Score /= totalWeight
	}
	return ranked
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// buildGapScore rewards compact days: the inverse of total idle time between
// scheduled blocks, summed across the week.
func buildGapScore(PreferenceConfig) ScoreFunc {
	return func(c Candidate) float64 {
		sections := c.Sections()
		totalGap := 0
		for _, day := range []DaySet{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
			intervals := dayIntervals(sections, day)
			if len(intervals) < 2 {
				continue
			}
			end := intervals[0][1]
			for _, iv := range intervals[1:] {
				if iv[0] > end {
					totalGap += iv[0] - end
				}
				if iv[1] > end {
					end = iv[1]
				}
			}
		}
		return 1 / (1 + float64(totalGap)/60)
	}
}

// buildTimeOfDayScore rewards meeting starts close to the ideal window.
func buildTimeOfDayScore(prefs PreferenceConfig) ScoreFunc {
	idealStart := prefs.IdealStartMinutes
	idealEnd := prefs.IdealEndMinutes
	if idealEnd <= idealStart {
		idealStart, idealEnd = 9*60, 17*60
	}
	return func(c Candidate) float64 {
		var totalDistance, meetings float64
		for _, a := range c.Assignments {
			for _, m := range a.Section.Meetings {
				meetings++
				switch {
				case m.Start < idealStart:
					totalDistance += float64(idealStart - m.Start)
				case m.Start > idealEnd:
					totalDistance += float64(m.Start - idealEnd)
				}
			}
		}
		if meetings == 0 {
			return 0
		}
		avg := totalDistance / meetings
		return clamp01(1 - avg/(12*60))
	}
}

// buildInstructorScore rewards the fraction of sections taught by preferred
// instructors.
func buildInstructorScore(prefs PreferenceConfig) ScoreFunc {
	preferred := make(map[string]struct{}, len(prefs.PreferredInstructors))
	for _, name := range prefs.PreferredInstructors {
		preferred[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return func(c Candidate) float64 {
		if len(c.Assignments) == 0 || len(preferred) == 0 {
			return 0
		}
		matches := 0
		for _, a := range c.Assignments {
			if _, ok := preferred[strings.ToLower(strings.TrimSpace(a.Section.Instructor))]; ok {
				matches++
			}
		}
		return float64(matches) / float64(len(c.Assignments))
	}
}
