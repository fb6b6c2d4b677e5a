package types

// QueryRecord is one row of a batch input sheet.
type QueryRecord struct {
	ID    string `json:"id,omitempty"`
	Query string `json:"query"`
}

// QueryResult pairs a query with its resolution, or the error that stopped it.
type QueryResult struct {
	QueryRecord
	Result     ResolutionResult `json:"result"`
	DurationMs int64            `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
}
