package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"wiki-resolver-go/internal/types"
)

func page(backlinks, langlinks, length int) types.Candidate {
	return types.Candidate{
		Title:         "Page",
		Exists:        true,
		Namespace:     types.NamespaceMain,
		BacklinkCount: backlinks,
		LanglinkCount: langlinks,
		ContentLength: length,
	}
}

func TestNotability_ZeroCases(t *testing.T) {
	missing := page(50000, 200, 90000)
	missing.Exists = false
	assert.Equal(t, 0.0, Notability(missing))

	talk := page(50000, 200, 90000)
	talk.Namespace = types.NamespaceOther
	assert.Equal(t, 0.0, Notability(talk))

	assert.Equal(t, 0.0, Notability(page(0, 0, 0)))
}

func TestNotability_Formula(t *testing.T) {
	want := 0.5*math.Log(50001) + 0.4*math.Log(201) + 0.1*math.Log(90001)
	assert.InDelta(t, want, Notability(page(50000, 200, 90000)), 1e-9)
	assert.InDelta(t, 8.672, Notability(page(50000, 200, 90000)), 1e-3)
}

func TestNotability_Monotonic(t *testing.T) {
	base := page(10, 5, 500)
	prev := Notability(base)
	for _, n := range []int{11, 100, 1000, 1000000} {
		c := base
		c.BacklinkCount = n
		assert.GreaterOrEqual(t, Notability(c), prev)
	}
	for _, n := range []int{6, 50, 300} {
		c := base
		c.LanglinkCount = n
		assert.GreaterOrEqual(t, Notability(c), prev)
	}
	for _, n := range []int{501, 5000, 900000} {
		c := base
		c.ContentLength = n
		assert.GreaterOrEqual(t, Notability(c), prev)
	}
}
