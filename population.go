package evotune

import "sort"

// rankPopulation sorts genomes descending by fitness, breaking fitness
// ties by lowest id so repeated runs with the same seed rank identically.
// Every genome must already be evaluated when this is called.
func rankPopulation(pop []Genome) {
	sort.Slice(pop, func(i, j int) bool {
		if pop[i].Fitness != pop[j].Fitness {
			return pop[i].Fitness > pop[j].Fitness
		}
		return pop[i].ID < pop[j].ID
	})
}

// populationStats computes best/average/worst fitness over a ranked
// population. Assumes descending order.
func populationStats(pop []Genome) (best, avg, worst float64) {
	if len(pop) == 0 {
		return 0, 0, 0
	}
	best = pop[0].Fitness
	worst = pop[len(pop)-1].Fitness
	sum := 0.0
	for _, g := range pop {
		sum += g.Fitness
	}
	return best, sum / float64(len(pop)), worst
}

// clonePopulation deep copies a population so snapshots handed to callers
// never alias engine-owned state.
func clonePopulation(pop []Genome) []Genome {
	out := make([]Genome, len(pop))
	for i, g := range pop {
		out[i] = g.Clone()
	}
	return out
}
