package evotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestTrackerMonotonic(t *testing.T) {
	var tr bestTracker

	_, ok := tr.Best()
	assert.False(t, ok)

	tr.Observe(Genome{ID: "gen0_member00", Fitness: 2, Params: []float64{0.1}})
	best, ok := tr.Best()
	require.True(t, ok)
	assert.Equal(t, 2.0, best.Fitness)

	// Worse generation leaves the champion alone.
	tr.Observe(Genome{ID: "gen1_member00", Fitness: 1})
	best, _ = tr.Best()
	assert.Equal(t, "gen0_member00", best.ID)

	// Equal fitness does not replace: strictly greater only.
	tr.Observe(Genome{ID: "gen2_member00", Fitness: 2})
	best, _ = tr.Best()
	assert.Equal(t, "gen0_member00", best.ID)

	tr.Observe(Genome{ID: "gen3_member00", Fitness: 3})
	best, _ = tr.Best()
	assert.Equal(t, "gen3_member00", best.ID)
}

func TestBestTrackerClones(t *testing.T) {
	var tr bestTracker
	src := Genome{ID: "gen0_member00", Fitness: 1, Params: []float64{0.5}}
	tr.Observe(src)

	src.Params[0] = -1
	best, _ := tr.Best()
	assert.Equal(t, 0.5, best.Params[0], "tracker must not alias the observed genome")

	best.Params[0] = -2
	again, _ := tr.Best()
	assert.Equal(t, 0.5, again.Params[0], "callers must not be able to corrupt the champion")
}
