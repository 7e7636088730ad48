package evotune

import (
	"fmt"
	"runtime"
)

// Config holds the caller-fixed knobs of an evolutionary run. The engine
// never tunes these itself; they are validated once at construction and
// constant for the run's lifetime.
type Config struct {
	// PopulationSize is the fixed population size N. Minimum 2.
	PopulationSize int

	// EliteFraction of the ranked population copied forward unchanged each
	// generation and used as the breeding pool. Must be in (0, 1]. The
	// selected elite count is ceil(EliteFraction*N) with a hard floor of 2
	// so crossover always has two distinct parents.
	EliteFraction float64

	// CrossoverRate is the probability a child is bred from two parents
	// via uniform per-gene crossover; otherwise it is a clone of parent A.
	CrossoverRate float64

	// MutationRate is the per-gene probability of Gaussian perturbation.
	MutationRate float64

	// MutationSigma scales the Gaussian noise as a fraction of each
	// parameter's range. Zero selects DefaultMutationSigma.
	MutationSigma float64

	// ReevaluateElites clears elite fitness each generation so a stochastic
	// evaluator re-scores survivors. With a deterministic evaluator this is
	// wasted work, so it defaults to off and cached fitness is retained.
	ReevaluateElites bool

	// EvalWorkers bounds concurrent fitness evaluations within one
	// generation. Zero selects runtime.NumCPU().
	EvalWorkers int

	// Seed initializes the engine-owned random source. Two engines with
	// identical Config and a deterministic evaluator produce identical
	// histories.
	Seed int64

	// Bounds declares the parameter layout every genome follows.
	Bounds Bounds

	// Invariants enables runtime assertion checks after each committed
	// generation. Zero value disables all checks.
	Invariants Invariants
}

// DefaultMutationSigma is the Gaussian sigma used when Config.MutationSigma
// is zero, as a fraction of each parameter's range.
const DefaultMutationSigma = 0.1

// Validate reports the first configuration error. Configuration errors are
// fatal: they are construction-time mistakes, never retried at runtime.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("config: population size must be >= 2 (got %d)", c.PopulationSize)
	}
	if c.EliteFraction <= 0 || c.EliteFraction > 1 {
		return fmt.Errorf("config: elite fraction must be in (0, 1] (got %v)", c.EliteFraction)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("config: crossover rate must be in [0, 1] (got %v)", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("config: mutation rate must be in [0, 1] (got %v)", c.MutationRate)
	}
	if c.MutationSigma < 0 {
		return fmt.Errorf("config: mutation sigma must be >= 0 (got %v)", c.MutationSigma)
	}
	if c.EvalWorkers < 0 {
		return fmt.Errorf("config: eval workers must be >= 0 (got %d)", c.EvalWorkers)
	}
	return c.Bounds.Validate()
}

func (c Config) mutationSigma() float64 {
	if c.MutationSigma == 0 {
		return DefaultMutationSigma
	}
	return c.MutationSigma
}

func (c Config) evalWorkers() int {
	if c.EvalWorkers == 0 {
		return runtime.NumCPU()
	}
	return c.EvalWorkers
}
