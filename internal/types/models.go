package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Namespace is the MediaWiki namespace a page lives in. Only the main
// (article) namespace matters for scoring.
type Namespace int

const (
	NamespaceMain Namespace = iota
	NamespaceOther
)

func (n Namespace) Valid() bool {
	return n == NamespaceMain || n == NamespaceOther
}

func (n Namespace) String() string {
	switch n {
	case NamespaceMain:
		return "main"
	case NamespaceOther:
		return "other"
	default:
		return fmt.Sprintf("namespace(%d)", int(n))
	}
}

func (n Namespace) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return json.Marshal(int(n))
	}
	return json.Marshal(n.String())
}

// UnmarshalJSON accepts "main"/"other" or a raw MediaWiki namespace number
// (0 is main, anything else is other).
func (n *Namespace) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "main", "":
			*n = NamespaceMain
		case "other":
			*n = NamespaceOther
		default:
			*n = Namespace(-1)
		}
		return nil
	}
	var ns int
	if err := json.Unmarshal(b, &ns); err != nil {
		return fmt.Errorf("namespace: %w", err)
	}
	*n = NamespaceFromID(ns)
	return nil
}

// NamespaceFromID maps a MediaWiki "ns" value.
func NamespaceFromID(ns int) Namespace {
	if ns == 0 {
		return NamespaceMain
	}
	return NamespaceOther
}

// Candidate is one page returned by the fetcher for a query.
type Candidate struct {
	Title         string    `json:"title"`
	Exists        bool      `json:"exists"`
	Namespace     Namespace `json:"namespace"`
	BacklinkCount int       `json:"backlink_count"`
	LanglinkCount int       `json:"langlink_count"`
	ContentLength int       `json:"content_length"`
}

// ScoredCandidate is a Candidate that survived filtering, with its scores
// computed up front.
type ScoredCandidate struct {
	Candidate       Candidate `json:"candidate"`
	TitleScore      float64   `json:"title_score"`
	NotabilityScore float64   `json:"notability_score"`
	TotalScore      float64   `json:"total_score"`
}

func NewScoredCandidate(c Candidate, titleScore, notability float64) ScoredCandidate {
	return ScoredCandidate{
		Candidate:       c,
		TitleScore:      titleScore,
		NotabilityScore: notability,
		TotalScore:      titleScore * notability / 100.0,
	}
}

func (s ScoredCandidate) ScoreString() string {
	return fmt.Sprintf("score %.2f (title %.1f, notability %.2f)", s.TotalScore, s.TitleScore, s.NotabilityScore)
}

// ResolutionResult is the outcome of resolving one query. Ranked keeps the
// order candidates survived filtering in; it is not sorted by score.
type ResolutionResult struct {
	UnambiguousMatch bool              `json:"unambiguous_match"`
	Disambiguation   *Candidate        `json:"disambiguation_candidate,omitempty"`
	Ranked           []ScoredCandidate `json:"ranked_candidates"`
}

// Best returns the first ranked candidate when the match is unambiguous.
func (r ResolutionResult) Best() (ScoredCandidate, bool) {
	if !r.UnambiguousMatch || len(r.Ranked) == 0 {
		return ScoredCandidate{}, false
	}
	return r.Ranked[0], true
}

type Thresholds struct {
	MinNotabilityScore   float64 `json:"min_notability_score" yaml:"min_notability_score"`
	MinTitleScore        float64 `json:"min_title_score" yaml:"min_title_score"`
	UnambiguousThreshold float64 `json:"unambiguous_threshold" yaml:"unambiguous_threshold"`
	UnambiguousCutoff    float64 `json:"unambiguous_cutoff" yaml:"unambiguous_cutoff"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinNotabilityScore:   4.0,
		MinTitleScore:        2.0,
		UnambiguousThreshold: 6.0,
		UnambiguousCutoff:    2.0,
	}
}
