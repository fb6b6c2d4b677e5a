package scoring

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s for case-insensitive comparisons. A Caser keeps state,
// so a fresh one is built per call.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// TitleScore is the fuzzy match between a query and a page title on a
// 0-100 scale: the mean of the whole-string and best-substring ratios.
func TitleScore(query, title string) float64 {
	q, t := Fold(query), Fold(title)
	return 0.5*Ratio(q, t) + 0.5*PartialRatio(q, t)
}
