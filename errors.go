package evotune

import "errors"

// Usage errors. These indicate programmer mistakes at the call site, not
// runtime conditions, and are surfaced as distinct sentinels so callers
// can match them with errors.Is.
var (
	// ErrTerminated is returned by Step on an engine that has already
	// terminated. A terminated engine never steps again.
	ErrTerminated = errors.New("evotune: engine is terminated")

	// ErrNotEvaluated is returned by BestGenome before any generation has
	// been evaluated.
	ErrNotEvaluated = errors.New("evotune: no generation evaluated yet")
)
