package resolver

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"wiki-resolver-go/internal/scoring"
	"wiki-resolver-go/internal/types"
)

// ErrInvalidArgument marks candidate data that breaks the caller contract.
var ErrInvalidArgument = errors.New("invalid argument")

// Resolver decides whether a candidate list has a single clear answer for
// a query. It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	th  types.Thresholds
	log *logrus.Entry
}

// New returns a Resolver. A nil log discards output.
func New(th types.Thresholds, log *logrus.Entry) *Resolver {
	if log == nil {
		base := logrus.New()
		base.SetOutput(io.Discard)
		log = logrus.NewEntry(base)
	}
	return &Resolver{th: th, log: log.WithField("component", "resolver")}
}

// Thresholds returns the configured thresholds.
func (r *Resolver) Thresholds() types.Thresholds {
	return r.th
}

// Resolve scores candidates for query. Disambiguation pages are recorded
// (the first one only) and skipped, list pages and pages below the
// notability floor are dropped. Ranked in the result keeps filter order.
//
// The match is unambiguous when exactly one candidate survives, or when the
// first survivor is also the best title match and its total score clears
// both the threshold and the cutoff over the runner-up.
//
// MinTitleScore is carried in the thresholds but not applied as a filter.
func (r *Resolver) Resolve(query string, candidates []types.Candidate) (types.ResolutionResult, error) {
	if err := validate(candidates); err != nil {
		return types.ResolutionResult{}, err
	}

	var disambiguation *types.Candidate
	scored := []types.ScoredCandidate{}
	for i := range candidates {
		c := candidates[i]
		if IsDisambiguation(c.Title) {
			if disambiguation == nil {
				disambiguation = &c
			}
			continue
		}
		if IsList(c.Title) {
			continue
		}
		notability := scoring.Notability(c)
		if notability < r.th.MinNotabilityScore {
			continue
		}
		scored = append(scored, types.NewScoredCandidate(c, scoring.TitleScore(query, c.Title), notability))
	}

	return types.ResolutionResult{
		UnambiguousMatch: r.unambiguous(disambiguation != nil, scored),
		Disambiguation:   disambiguation,
		Ranked:           scored,
	}, nil
}

func (r *Resolver) unambiguous(sawDisambiguation bool, scored []types.ScoredCandidate) bool {
	switch {
	case sawDisambiguation:
		return false
	case len(scored) == 0:
		return false
	case len(scored) == 1:
		return true
	}

	// Sort positions, not values, so the top entry can be compared to the
	// first survivor by identity.
	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].TitleScore > scored[order[b]].TitleScore
	})
	if order[0] != 0 {
		return false
	}

	top, second := scored[order[0]], scored[order[1]]
	r.log.WithFields(logrus.Fields{
		"top":    fmt.Sprintf("%s: %s", top.Candidate.Title, top.ScoreString()),
		"second": fmt.Sprintf("%s: %s", second.Candidate.Title, second.ScoreString()),
	}).Info("top two scores")
	return top.TotalScore > r.th.UnambiguousThreshold &&
		(top.TotalScore-second.TotalScore) > r.th.UnambiguousCutoff
}

func validate(candidates []types.Candidate) error {
	for i, c := range candidates {
		switch {
		case !c.Namespace.Valid():
			return fmt.Errorf("candidate %d (%q): unknown namespace %v: %w", i, c.Title, c.Namespace, ErrInvalidArgument)
		case c.BacklinkCount < 0:
			return fmt.Errorf("candidate %d (%q): negative backlink count: %w", i, c.Title, ErrInvalidArgument)
		case c.LanglinkCount < 0:
			return fmt.Errorf("candidate %d (%q): negative langlink count: %w", i, c.Title, ErrInvalidArgument)
		case c.ContentLength < 0:
			return fmt.Errorf("candidate %d (%q): negative content length: %w", i, c.Title, ErrInvalidArgument)
		}
	}
	return nil
}
