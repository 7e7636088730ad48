package evotune

// ShouldContinue decides whether the evolutionary loop runs another
// generation. Pure over the history slice and two thresholds: it stops
// once maxGenerations summaries have accumulated, or once the best
// fitness seen meets targetFitness (nil target disables the check).
// With no generations run yet there is no best fitness to compare, so
// an empty history always continues; negated-fitness minimization runs
// with negative targets would otherwise stop before evaluating anything.
func ShouldContinue(history []GenerationSummary, maxGenerations int, targetFitness *float64) bool {
	if len(history) >= maxGenerations {
		return false
	}
	if len(history) == 0 {
		return true
	}
	if targetFitness != nil && bestInHistory(history) >= *targetFitness {
		return false
	}
	return true
}

// Stalled reports whether the best fitness has not improved over the last
// window generations. With window <= 0 stall detection is disabled. Used
// as an optional plateau stop on top of ShouldContinue.
func Stalled(history []GenerationSummary, window int) bool {
	if window <= 0 || len(history) <= window {
		return false
	}
	cutoff := bestInHistory(history[:len(history)-window])
	for _, s := range history[len(history)-window:] {
		if s.Best > cutoff {
			return false
		}
	}
	return true
}

func bestInHistory(history []GenerationSummary) float64 {
	best := 0.0
	for i, s := range history {
		if i == 0 || s.Best > best {
			best = s.Best
		}
	}
	return best
}
