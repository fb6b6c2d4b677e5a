package aggregator

import (
	"wiki-resolver-go/internal/processor"
	"wiki-resolver-go/internal/types"
)

type Summary struct {
	Total              int            `json:"total"`
	Unambiguous        int            `json:"unambiguous"`
	Ambiguous          int            `json:"ambiguous"`
	WithDisambiguation int            `json:"with_disambiguation"`
	NoCandidates       int            `json:"no_candidates"`
	Failed             int            `json:"failed"`
	UnambiguousRate    float64        `json:"unambiguous_rate"`
	ByOutcome          map[string]int `json:"by_outcome"`
}

func Aggregate(results []types.QueryResult) Summary {
	s := Summary{Total: len(results), ByOutcome: map[string]int{}}
	for _, r := range results {
		outcome := processor.OutcomeError
		if r.Error == "" {
			outcome = processor.Outcome(r.Result)
		}
		s.ByOutcome[outcome]++
		switch outcome {
		case processor.OutcomeError:
			s.Failed++
		case processor.OutcomeDisambiguation:
			s.WithDisambiguation++
		case processor.OutcomeNoCandidates:
			s.NoCandidates++
		case processor.OutcomeUnambiguous:
			s.Unambiguous++
		case processor.OutcomeAmbiguous:
			s.Ambiguous++
		}
	}
	if s.Total > 0 {
		s.UnambiguousRate = float64(s.Unambiguous) / float64(s.Total)
	}
	return s
}
