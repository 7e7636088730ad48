package evotune

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossoverMixesParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := Genome{ID: "gen0_member00", Params: []float64{0, 0, 0, 0, 0, 0, 0, 0}}
	b := Genome{ID: "gen0_member01", Params: []float64{1, 1, 1, 1, 1, 1, 1, 1}}

	child := crossoverGenomes(rng, a, b, "gen1_member02", 1)

	require.Len(t, child.Params, 8)
	for _, v := range child.Params {
		assert.Contains(t, []float64{0, 1}, v, "every gene must come from a parent")
	}
	assert.Equal(t, "gen1_member02", child.ID)
	assert.Equal(t, 1, child.Generation)
	assert.False(t, child.Evaluated)
}

func TestCrossoverDoesNotAliasParents(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := Genome{Params: []float64{0.1, 0.2}}
	b := Genome{Params: []float64{0.9, 0.8}}

	child := crossoverGenomes(rng, a, b, "gen1_member00", 1)
	child.Params[0] = -1

	assert.Equal(t, 0.1, a.Params[0])
	assert.Equal(t, 0.9, b.Params[0])
}

func TestCloneChildCopiesParams(t *testing.T) {
	a := Genome{ID: "gen0_member00", Params: []float64{0.3, 0.6}, Fitness: 7, Evaluated: true}
	child := cloneChild(a, "gen1_member04", 1)

	assert.Equal(t, a.Params, child.Params)
	assert.False(t, child.Evaluated, "child must start unevaluated")
	assert.Zero(t, child.Fitness)

	child.Params[0] = -1
	assert.Equal(t, 0.3, a.Params[0])
}

func TestMutateRateZeroKeepsParams(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bounds := Bounds{{Name: "x", Min: 0, Max: 1}, {Name: "y", Min: 0, Max: 1}}
	g := Genome{ID: "gen0_member00", Params: []float64{0.4, 0.6}, Fitness: 2, Evaluated: true}

	out := mutateGenome(rng, g, bounds, 0, 0.1)

	assert.Equal(t, g.Params, out.Params)
	assert.False(t, out.Evaluated, "mutation output is a new individual, fitness must reset")
	assert.Zero(t, out.Fitness)
	assert.True(t, g.Evaluated, "input genome must be untouched")
}

func TestMutateClampsToBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	bounds := Bounds{{Name: "x", Min: 0, Max: 0.001}}
	g := Genome{Params: []float64{0.0005}}

	// Huge sigma forces nearly every draw outside the tiny range.
	for i := 0; i < 200; i++ {
		out := mutateGenome(rng, g, bounds, 1, 100)
		assert.GreaterOrEqual(t, out.Params[0], 0.0)
		assert.LessOrEqual(t, out.Params[0], 0.001)
	}
}

func TestMutateRateOnePerturbsMostGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	bounds := Bounds{
		{Name: "a", Min: 0, Max: 1},
		{Name: "b", Min: 0, Max: 1},
		{Name: "c", Min: 0, Max: 1},
		{Name: "d", Min: 0, Max: 1},
	}
	g := Genome{Params: []float64{0.5, 0.5, 0.5, 0.5}}

	changed := 0
	for i := 0; i < 50; i++ {
		out := mutateGenome(rng, g, bounds, 1, 0.1)
		for j := range out.Params {
			if out.Params[j] != g.Params[j] {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 150, "rate 1 should perturb nearly every gene")
}
