package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"wiki-resolver-go/internal/aggregator"
	"wiki-resolver-go/internal/processor"
	"wiki-resolver-go/internal/types"
)

const (
	resultsSheet = "results"
	summarySheet = "summary"
)

var resultsHeader = []any{
	"id", "query", "outcome", "unambiguous", "best_title", "best_total_score",
	"disambiguation_page", "ranked_count", "ranked_titles", "duration_ms", "error",
}

// WriteReport writes per-query results and the batch summary to an xlsx file.
func WriteReport(path string, results []types.QueryResult, summary aggregator.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &resultsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := resultRow(r)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summaryRows := [][]any{
		{"metric", "value"},
		{"total", summary.Total},
		{"unambiguous", summary.Unambiguous},
		{"ambiguous", summary.Ambiguous},
		{"with_disambiguation", summary.WithDisambiguation},
		{"no_candidates", summary.NoCandidates},
		{"failed", summary.Failed},
		{"unambiguous_rate", summary.UnambiguousRate},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func resultRow(r types.QueryResult) []any {
	outcome := processor.OutcomeError
	if r.Error == "" {
		outcome = processor.Outcome(r.Result)
	}
	bestTitle, bestScore := "", ""
	if best, ok := r.Result.Best(); ok {
		bestTitle = best.Candidate.Title
		bestScore = fmt.Sprintf("%.2f", best.TotalScore)
	}
	disambiguation := ""
	if r.Result.Disambiguation != nil {
		disambiguation = r.Result.Disambiguation.Title
	}
	titles := ""
	for i, sc := range r.Result.Ranked {
		if i > 0 {
			titles += "; "
		}
		titles += sc.Candidate.Title
	}
	return []any{
		r.ID, r.Query, outcome, r.Result.UnambiguousMatch, bestTitle, bestScore,
		disambiguation, len(r.Result.Ranked), titles, r.DurationMs, r.Error,
	}
}
