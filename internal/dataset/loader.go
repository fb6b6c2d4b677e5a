package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"wiki-resolver-go/internal/logger"
	"wiki-resolver-go/internal/types"
)

// LoadQueries reads batch queries from the first sheet of an xlsx file. The
// query column is found by header ("query", "concept", "term" or "title");
// an optional id column is any header that is "id" or ends in " id" or
// "_id", and takes precedence. Blank queries are skipped.
func LoadQueries(path string) ([]types.QueryRecord, error) {
	log := logger.New().WithField("component", "dataset.loader").WithField("path", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	queryIdx := -1
	idIdx := -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		// id first: "query_id" and "Term ID" name the id column.
		case l == "id" || strings.HasSuffix(l, " id") || strings.HasSuffix(l, "_id"):
			if idIdx == -1 {
				idIdx = i
			}
		case strings.Contains(l, "query") || strings.Contains(l, "concept") || strings.Contains(l, "term") || strings.Contains(l, "title"):
			if queryIdx == -1 {
				queryIdx = i
			}
		}
	}
	if queryIdx == -1 {
		return nil, fmt.Errorf("no query column in header %v", header)
	}
	log.WithField("query_idx", queryIdx).WithField("id_idx", idIdx).Debug("detected column indices")

	var out []types.QueryRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.QueryRecord{}
		if queryIdx < len(r) {
			rec.Query = strings.TrimSpace(r[queryIdx])
		}
		if idIdx >= 0 && idIdx < len(r) {
			rec.ID = strings.TrimSpace(r[idIdx])
		}
		if rec.Query == "" {
			continue
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", i+1)
		}
		out = append(out, rec)
	}
	log.WithField("queries", len(out)).Info("queries loaded")
	return out, nil
}
