package evotune

import "math/rand"

// crossoverGenomes breeds one child from two parents by uniform per-gene
// crossover: each parameter comes from either parent with probability 0.5.
// The genome has no positional structure, so uniform mixing avoids the
// linkage bias of single-point crossover. The child starts unevaluated.
func crossoverGenomes(rng *rand.Rand, a, b Genome, id string, gen int) Genome {
	params := make([]float64, len(a.Params))
	for i := range params {
		if rng.Float64() < 0.5 {
			params[i] = a.Params[i]
		} else {
			params[i] = b.Params[i]
		}
	}
	return Genome{ID: id, Generation: gen, Params: params}
}

// cloneChild is the no-crossover branch: a fresh genome carrying parent
// A's parameters. Copied, not referenced — parent and child must never
// share a params slice.
func cloneChild(a Genome, id string, gen int) Genome {
	params := make([]float64, len(a.Params))
	copy(params, a.Params)
	return Genome{ID: id, Generation: gen, Params: params}
}

// mutateGenome perturbs each parameter independently with probability
// rate, adding Gaussian noise scaled to sigmaFrac of that parameter's
// range, then clamps back into bounds. It returns a new genome and leaves
// the argument untouched; the per-gene probability preserves partial
// exploration instead of re-rolling an otherwise fit genome wholesale.
func mutateGenome(rng *rand.Rand, g Genome, bounds Bounds, rate, sigmaFrac float64) Genome {
	out := g.Clone()
	out.Fitness = 0
	out.Evaluated = false
	for i, p := range bounds {
		if rng.Float64() >= rate {
			continue
		}
		out.Params[i] = p.Clamp(out.Params[i] + rng.NormFloat64()*sigmaFrac*p.Range())
	}
	return out
}
