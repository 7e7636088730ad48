package evotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvariantsDisabledByZeroValue(t *testing.T) {
	var inv Invariants
	// Wildly inconsistent inputs must not panic when disabled.
	assert.NotPanics(t, func() {
		inv.checkGeneration(Config{PopulationSize: 4}, nil, nil, nil, nil)
	})
}

func TestInvariantsCatchPopulationSizeDrift(t *testing.T) {
	cfg := Config{PopulationSize: 2, Bounds: validBounds()}
	inv := DefaultInvariants()

	pop := []Genome{
		{ID: "gen0_member00", Params: []float64{0.5}},
		{ID: "gen0_member01", Params: []float64{0.5}},
	}
	assert.Panics(t, func() {
		inv.checkGeneration(cfg, pop, pop[:1], nil, nil)
	})
}

func TestInvariantsCatchOutOfBoundsParam(t *testing.T) {
	cfg := Config{PopulationSize: 1, Bounds: validBounds()}
	inv := Invariants{Enabled: true, CheckBounds: true}

	next := []Genome{{ID: "gen1_member00", Params: []float64{1.5}}}
	assert.Panics(t, func() {
		inv.checkGeneration(cfg, next, next, nil, nil)
	})
}

func TestInvariantsCatchBestRegression(t *testing.T) {
	inv := Invariants{Enabled: true, CheckMonotonicBest: true}
	hist := []GenerationSummary{
		{Generation: 0, Best: 5},
		{Generation: 1, Best: 4},
	}
	assert.Panics(t, func() {
		inv.checkGeneration(Config{}, nil, nil, nil, hist)
	})
}

func TestInvariantsCatchEliteMutation(t *testing.T) {
	inv := Invariants{Enabled: true, CheckEliteIdentity: true}
	elite := []Genome{{ID: "gen0_member00", Fitness: 3, Evaluated: true}}
	next := []Genome{{ID: "gen0_member00", Fitness: 2, Evaluated: true}}
	assert.Panics(t, func() {
		inv.checkGeneration(Config{}, nil, next, elite, nil)
	})
}
