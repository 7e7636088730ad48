package evotune

import (
	"fmt"
	"math/rand"
)

// ParamSpec declares one named parameter of a strategy genome together
// with its valid range. Every operator in the engine clamps to [Min, Max];
// a value outside its range never survives crossover or mutation.
type ParamSpec struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Range returns the width of the valid interval.
func (p ParamSpec) Range() float64 {
	return p.Max - p.Min
}

// Clamp forces v into [Min, Max].
func (p ParamSpec) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Bounds is the ordered parameter layout shared by every genome in a run.
type Bounds []ParamSpec

// Validate fails fast on misconfigured bounds. Called at engine
// construction, never during a run.
func (b Bounds) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("bounds: at least one parameter required")
	}
	seen := make(map[string]bool, len(b))
	for i, p := range b {
		if p.Name == "" {
			return fmt.Errorf("bounds[%d]: empty parameter name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("bounds[%d]: duplicate parameter %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Min >= p.Max {
			return fmt.Errorf("bounds[%d] %q: min %v must be < max %v", i, p.Name, p.Min, p.Max)
		}
	}
	return nil
}

// Genome is one candidate strategy: a fixed-length parameter vector plus
// lineage metadata. Genomes are value objects: operators never edit a
// genome in place, they build a new one. That keeps an elite retained in
// the population and a child derived from it from ever aliasing.
type Genome struct {
	ID         string    `json:"id"`
	Generation int       `json:"generation"`
	Params     []float64 `json:"params"`
	Fitness    float64   `json:"fitness"`
	Evaluated  bool      `json:"evaluated"`
}

// genomeID builds the stable human-inspectable id for member k of
// generation n, e.g. "gen3_member07".
func genomeID(gen, member int) string {
	return fmt.Sprintf("gen%d_member%02d", gen, member)
}

// Clone returns a deep copy. The params slice is copied, not shared.
func (g Genome) Clone() Genome {
	cp := g
	cp.Params = make([]float64, len(g.Params))
	copy(cp.Params, g.Params)
	return cp
}

// Param returns the value of the named parameter, resolved through the
// bounds layout. Mostly a convenience for evaluators and reports.
func (g Genome) Param(bounds Bounds, name string) (float64, bool) {
	for i, p := range bounds {
		if p.Name == name && i < len(g.Params) {
			return g.Params[i], true
		}
	}
	return 0, false
}

// withFitness returns a copy carrying the evaluated score.
func (g Genome) withFitness(f float64) Genome {
	cp := g.Clone()
	cp.Fitness = f
	cp.Evaluated = true
	return cp
}

// randomGenome draws every parameter uniformly from its declared range.
// Used only to build generation 0.
func randomGenome(rng *rand.Rand, bounds Bounds, gen, member int) Genome {
	params := make([]float64, len(bounds))
	for i, p := range bounds {
		params[i] = p.Min + rng.Float64()*p.Range()
	}
	return Genome{
		ID:         genomeID(gen, member),
		Generation: gen,
		Params:     params,
	}
}
