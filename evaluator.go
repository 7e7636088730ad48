package evotune

import "context"

// Evaluator scores a genome. Implementations are supplied by the caller
// and treated as black boxes: they may run a stochastic simulation, they
// may be expensive, and they must be safe to call concurrently for
// different genomes. Higher fitness is better; a caller minimizing a cost
// negates it. An error from Evaluate aborts the in-progress generation
// atomically (see Engine.Step).
type Evaluator interface {
	Evaluate(ctx context.Context, g Genome) (float64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, g Genome) (float64, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, g Genome) (float64, error) {
	return f(ctx, g)
}
