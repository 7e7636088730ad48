package logx

import (
	"fmt"
	"time"
)

// LogGeneration prints the single-line per-generation progress record.
func LogGeneration(gen int, best, avg, worst float64, evals int, elapsed time.Duration) {
	fmt.Printf("%s  %s  gen=%d  best=%s  avg=%.4f  worst=%.4f  evals=%d  took=%s\n",
		TS(), Channel("GEN "), gen, FitnessColor(best), avg, worst, evals, FormatDuration(elapsed))
}

// LogNewBest prints a best-fitness improvement.
func LogNewBest(gen int, id string, prev, cur float64) {
	fmt.Printf("%s  %s  gen=%d  %s  %s → %s  (%s)\n",
		TS(), Channel("BEST"), gen, id, FitnessColor(prev), FitnessColor(cur), DeltaColor(cur-prev))
}

// LogCheckpoint prints a checkpoint save notice.
func LogCheckpoint(path string, gen int) {
	fmt.Printf("%s  %s  saved %s at gen %d\n", TS(), Channel("CKPT"), path, gen)
}

// LogRunStart prints the run banner.
func LogRunStart(popSize, maxGens, workers int, seed int64) {
	fmt.Printf("%s  %s  population=%d  max_generations=%d  workers=%d  seed=%d\n",
		TS(), Channel("RUN "), popSize, maxGens, workers, seed)
}

// LogRunDone prints the final report line.
func LogRunDone(reason string, gens, evals int, best float64, elapsed time.Duration) {
	fmt.Printf("%s  %s  %s after %d generations, %d evaluations, best=%s, runtime=%s\n",
		TS(), Channel("RUN "), Highlight(reason), gens, evals, FitnessColor(best), FormatDuration(elapsed))
}
