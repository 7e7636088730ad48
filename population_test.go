package evotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankPopulationDescendingWithIDTieBreak(t *testing.T) {
	pop := []Genome{
		{ID: "gen0_member02", Fitness: 1.0, Evaluated: true},
		{ID: "gen0_member00", Fitness: 3.0, Evaluated: true},
		{ID: "gen0_member03", Fitness: 2.0, Evaluated: true},
		{ID: "gen0_member01", Fitness: 2.0, Evaluated: true},
	}
	rankPopulation(pop)

	ids := []string{pop[0].ID, pop[1].ID, pop[2].ID, pop[3].ID}
	assert.Equal(t, []string{"gen0_member00", "gen0_member01", "gen0_member03", "gen0_member02"}, ids)
}

func TestPopulationStats(t *testing.T) {
	pop := []Genome{
		{Fitness: 4.0}, {Fitness: 2.0}, {Fitness: 0.0},
	}
	best, avg, worst := populationStats(pop)
	assert.Equal(t, 4.0, best)
	assert.Equal(t, 2.0, avg)
	assert.Equal(t, 0.0, worst)

	best, avg, worst = populationStats(nil)
	assert.Zero(t, best)
	assert.Zero(t, avg)
	assert.Zero(t, worst)
}

func TestClonePopulationDeepCopies(t *testing.T) {
	pop := []Genome{{ID: "gen0_member00", Params: []float64{1, 2}}}
	cp := clonePopulation(pop)
	cp[0].Params[0] = 99

	assert.Equal(t, 1.0, pop[0].Params[0])
}
