package resolver

import (
	"strings"

	"wiki-resolver-go/internal/scoring"
)

// IsDisambiguation reports whether a title names a disambiguation page.
func IsDisambiguation(title string) bool {
	return strings.Contains(scoring.Fold(title), "disambiguation")
}

// IsList reports whether a title names a "List of ..." page.
func IsList(title string) bool {
	return strings.Contains(scoring.Fold(title), "list of")
}
