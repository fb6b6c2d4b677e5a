package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"wiki-resolver-go/internal/metrics"
	"wiki-resolver-go/internal/resolver"
	"wiki-resolver-go/internal/types"
)

// Fetcher returns candidate pages for a query, best guess first.
type Fetcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

const (
	OutcomeUnambiguous    = "unambiguous"
	OutcomeAmbiguous      = "ambiguous"
	OutcomeDisambiguation = "disambiguation"
	OutcomeNoCandidates   = "no_candidates"
	OutcomeError          = "error"
)

// Processor ties a fetcher to the resolver.
type Processor struct {
	fetcher  Fetcher
	resolver *resolver.Resolver
	workers  int
	log      *logrus.Entry
}

func New(f Fetcher, r *resolver.Resolver, workers int, log *logrus.Entry) *Processor {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Processor{fetcher: f, resolver: r, workers: workers, log: log.WithField("component", "processor")}
}

// ArticleSearch fetches candidates for query and resolves them.
func (p *Processor) ArticleSearch(ctx context.Context, query string) (types.ResolutionResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.ResolutionResult{}, fmt.Errorf("empty query: %w", resolver.ErrInvalidArgument)
	}

	candidates, err := p.fetcher.Search(ctx, query)
	if err != nil {
		metrics.RecordResolution(OutcomeError)
		return types.ResolutionResult{}, fmt.Errorf("fetch candidates: %w", err)
	}

	res, err := p.resolver.Resolve(query, candidates)
	if err != nil {
		metrics.RecordResolution(OutcomeError)
		return types.ResolutionResult{}, fmt.Errorf("resolve: %w", err)
	}

	outcome := Outcome(res)
	metrics.RecordResolution(outcome)
	p.log.WithFields(logrus.Fields{
		"query":      query,
		"candidates": len(candidates),
		"ranked":     len(res.Ranked),
		"outcome":    outcome,
	}).Info("query resolved")
	return res, nil
}

// ProcessQuery runs one batch record; failures land on the result.
func (p *Processor) ProcessQuery(ctx context.Context, rec types.QueryRecord) types.QueryResult {
	start := time.Now()
	out := types.QueryResult{QueryRecord: rec}

	res, err := p.ArticleSearch(ctx, rec.Query)
	if err != nil {
		out.Error = err.Error()
		p.log.WithField("query", rec.Query).WithField("error", err.Error()).Warn("query failed")
	}
	out.Result = res
	out.DurationMs = time.Since(start).Milliseconds()
	return out
}

// ProcessBatch resolves records with bounded concurrency. Results keep input
// order. Only cancellation aborts the batch.
func (p *Processor) ProcessBatch(ctx context.Context, recs []types.QueryRecord) ([]types.QueryResult, error) {
	results := make([]types.QueryResult, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessQuery(gctx, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

// Outcome labels a resolution for metrics and reports.
func Outcome(res types.ResolutionResult) string {
	switch {
	case res.Disambiguation != nil:
		return OutcomeDisambiguation
	case len(res.Ranked) == 0:
		return OutcomeNoCandidates
	case res.UnambiguousMatch:
		return OutcomeUnambiguous
	default:
		return OutcomeAmbiguous
	}
}
