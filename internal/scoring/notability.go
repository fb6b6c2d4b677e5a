package scoring

import (
	"math"

	"wiki-resolver-go/internal/types"
)

const (
	backlinkWeight = 0.5
	langlinkWeight = 0.4
	lengthWeight   = 0.1
)

// Notability is a popularity heuristic: higher means a more canonical page.
// Counts are log-damped so a few very large pages do not dominate. Pages
// that do not exist or live outside the main namespace score 0.
func Notability(c types.Candidate) float64 {
	if !c.Exists || c.Namespace != types.NamespaceMain {
		return 0
	}
	return math.Log1p(float64(c.BacklinkCount))*backlinkWeight +
		math.Log1p(float64(c.LanglinkCount))*langlinkWeight +
		math.Log1p(float64(c.ContentLength))*lengthWeight
}
