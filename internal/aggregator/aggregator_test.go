package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wiki-resolver-go/internal/types"
)

func TestAggregate(t *testing.T) {
	sc := types.NewScoredCandidate(types.Candidate{Title: "Python", Exists: true}, 100, 8)
	results := []types.QueryResult{
		{Result: types.ResolutionResult{UnambiguousMatch: true, Ranked: []types.ScoredCandidate{sc}}},
		{Result: types.ResolutionResult{UnambiguousMatch: true, Ranked: []types.ScoredCandidate{sc}}},
		{Result: types.ResolutionResult{Ranked: []types.ScoredCandidate{sc, sc}}},
		{Result: types.ResolutionResult{Disambiguation: &types.Candidate{Title: "Python (disambiguation)"}, Ranked: []types.ScoredCandidate{sc}}},
		{Result: types.ResolutionResult{Ranked: []types.ScoredCandidate{}}},
		{Error: "fetch candidates: boom"},
	}

	s := Aggregate(results)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Unambiguous)
	assert.Equal(t, 1, s.Ambiguous)
	assert.Equal(t, 1, s.WithDisambiguation)
	assert.Equal(t, 1, s.NoCandidates)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 2.0/6.0, s.UnambiguousRate, 1e-12)
	assert.Equal(t, 2, s.ByOutcome["unambiguous"])
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.UnambiguousRate)
	assert.NotNil(t, s.ByOutcome)
}
