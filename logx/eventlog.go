package logx

import (
	"fmt"
	"time"

	"evotune/tui"
)

// Convenience functions that forward run events to the TUI.

func LogGenerationDone(gen int, best float64, evals int) {
	tui.PushEvent(tui.Event{
		Timestamp: time.Now(),
		Type:      "GEN",
		Severity:  "info",
		Message:   fmt.Sprintf("Generation %d done (best=%.4f, evals=%d)", gen, best, evals),
	})
}

func LogBestImproved(prev, cur float64, id string) {
	tui.PushEvent(tui.Event{
		Timestamp: time.Now(),
		Type:      "BEST",
		Severity:  "info",
		Message:   fmt.Sprintf("Best improved: %.4f → %.4f (%s)", prev, cur, id),
	})
}

func LogStalledRun(window int) {
	tui.PushEvent(tui.Event{
		Timestamp: time.Now(),
		Type:      "STALL",
		Severity:  "warning",
		Message:   fmt.Sprintf("No improvement for %d generations", window),
	})
}

func LogCheckpointSaved(path string, gen int) {
	tui.PushEvent(tui.Event{
		Timestamp: time.Now(),
		Type:      "CKPT",
		Severity:  "info",
		Message:   fmt.Sprintf("Checkpoint saved to %s at gen %d", path, gen),
	})
}

func LogRunFinished(reason string, best float64) {
	tui.PushEvent(tui.Event{
		Timestamp: time.Now(),
		Type:      "DONE",
		Severity:  "info",
		Message:   fmt.Sprintf("Run finished (%s), best=%.4f", reason, best),
	})
}
