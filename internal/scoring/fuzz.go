package scoring

import "math"

// Ratio is the normalized Indel similarity of a and b on a 0-100 scale,
// rounded to a whole number: 200*LCS / (len(a)+len(b)), counted in code
// points. Two empty strings are identical and score 100.
func Ratio(a, b string) float64 {
	return roundHalfEven(indelRatio([]rune(a), []rune(b)))
}

// PartialRatio scores how well the shorter string matches some stretch of
// the longer one. Every alignment of the shorter string against the longer
// one is tried, including the ones that hang off either end; alignments
// whose edge character does not occur in the shorter string cannot improve
// the result and are skipped.
func PartialRatio(a, b string) float64 {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	if len(s1) == 0 {
		if len(s2) == 0 {
			return 100
		}
		return 0
	}

	best := partialAlign(s1, s2)
	if best != 100 && len(s1) == len(s2) {
		if r := partialAlign(s2, s1); r > best {
			best = r
		}
	}
	return roundHalfEven(best)
}

func partialAlign(short, long []rune) float64 {
	n, m := len(short), len(long)
	seen := make(map[rune]struct{}, n)
	for _, r := range short {
		seen[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := seen[r]
		return ok
	}

	best := 0.0
	try := func(window []rune) bool {
		if r := indelRatio(short, window); r > best {
			best = r
		}
		return best == 100
	}

	// windows growing in from the left edge
	for i := 1; i < n; i++ {
		if !has(long[i-1]) {
			continue
		}
		if try(long[:i]) {
			return best
		}
	}
	// full-length windows
	for i := 0; i < m-n; i++ {
		if !has(long[i+n-1]) {
			continue
		}
		if try(long[i : i+n]) {
			return best
		}
	}
	// windows shrinking off the right edge
	for i := m - n; i < m; i++ {
		if !has(long[i]) {
			continue
		}
		if try(long[i:]) {
			return best
		}
	}
	return best
}

func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcsLength(a, b)) / float64(total)
}

func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func roundHalfEven(x float64) float64 {
	return math.RoundToEven(x)
}
