package evotune

import "time"

// GenerationSummary is the per-generation record appended to history
// after every successful step. Plain data, safe to serialize as-is.
type GenerationSummary struct {
	Generation  int           `json:"generation"`
	Best        float64       `json:"best"`
	Avg         float64       `json:"avg"`
	Worst       float64       `json:"worst"`
	BestID      string        `json:"best_id"`
	Evaluations int           `json:"evaluations"`
	Elapsed     time.Duration `json:"elapsed"`
}

// StopReason explains why Run returned.
type StopReason string

const (
	StopMaxGenerations StopReason = "max_generations"
	StopTargetReached  StopReason = "target_reached"
	StopStalled        StopReason = "stalled"
	StopCancelled      StopReason = "cancelled"
)

// FinalReport is what a completed (or cancelled) run hands back to the
// caller.
type FinalReport struct {
	Best        Genome              `json:"best"`
	Generations int                 `json:"generations"`
	Evaluations int                 `json:"evaluations"`
	Reason      StopReason          `json:"reason"`
	Elapsed     time.Duration       `json:"elapsed"`
	History     []GenerationSummary `json:"history"`
}

// RunOptions controls a multi-generation Run.
type RunOptions struct {
	// MaxGenerations caps the run. Must be >= 1.
	MaxGenerations int
	// TargetFitness stops the run early once the best genome meets it.
	// Nil disables the target check.
	TargetFitness *float64
	// StallGenerations stops the run after this many generations without
	// best-fitness improvement. Zero disables plateau detection.
	StallGenerations int
	// OnGeneration, if set, is called after every successful step with
	// that generation's summary. It runs on the Run goroutine, so slow
	// callbacks slow the run.
	OnGeneration func(GenerationSummary)
}
