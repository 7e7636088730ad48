package evotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func history(bests ...float64) []GenerationSummary {
	h := make([]GenerationSummary, len(bests))
	for i, b := range bests {
		h[i] = GenerationSummary{Generation: i, Best: b}
	}
	return h
}

func TestShouldContinueMaxGenerations(t *testing.T) {
	assert.True(t, ShouldContinue(history(1, 2), 3, nil))
	assert.False(t, ShouldContinue(history(1, 2, 3), 3, nil))
	assert.False(t, ShouldContinue(history(1, 2, 3, 4), 3, nil))
	assert.True(t, ShouldContinue(nil, 1, nil))
}

func TestShouldContinueTarget(t *testing.T) {
	target := 5.0
	assert.True(t, ShouldContinue(history(1, 4.9), 100, &target))
	assert.False(t, ShouldContinue(history(1, 5.0), 100, &target))
	assert.False(t, ShouldContinue(history(6, 2), 100, &target), "best-ever counts, not last")
}

func TestShouldContinueEmptyHistory(t *testing.T) {
	// No generation has run, so there is no best fitness to hold against
	// a target. Minimization runs negate fitness, making targets at or
	// below zero legitimate.
	zero := 0.0
	negative := -5.0
	assert.True(t, ShouldContinue(nil, 10, &zero))
	assert.True(t, ShouldContinue(nil, 10, &negative))
	assert.True(t, ShouldContinue([]GenerationSummary{}, 10, &negative))
	assert.False(t, ShouldContinue(nil, 0, &negative), "generation cap still applies")
}

func TestStalled(t *testing.T) {
	assert.False(t, Stalled(history(1, 1, 1, 1), 0), "window 0 disables detection")
	assert.False(t, Stalled(history(1, 1, 1), 3), "not enough history yet")
	assert.True(t, Stalled(history(1, 1, 1, 1), 3))
	assert.False(t, Stalled(history(1, 1, 1, 2), 3), "improvement inside the window")
	assert.True(t, Stalled(history(5, 4, 4, 4, 4), 3), "worse generations do not reset the plateau")
	assert.False(t, Stalled(history(1, 1, 1, 1.0001), 3), "any strict improvement counts")
}
