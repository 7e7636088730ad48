package evotune

import "fmt"

// Invariants holds configuration for runtime assertion checking. Checks
// run after each committed generation and panic on violation: a failed
// invariant is an engine bug, not a runtime condition, and must not be
// papered over. The zero value disables everything; tests and debug runs
// enable it via DefaultInvariants.
type Invariants struct {
	Enabled             bool // master switch for all checks
	CheckBounds         bool // every parameter inside its declared range
	CheckPopulationSize bool // population size constant across generations
	CheckMonotonicBest  bool // per-generation best never regresses in history
	CheckEliteIdentity  bool // elites reappear unchanged in the next population
}

// DefaultInvariants returns the configuration with every check enabled.
func DefaultInvariants() Invariants {
	return Invariants{
		Enabled:             true,
		CheckBounds:         true,
		CheckPopulationSize: true,
		CheckMonotonicBest:  true,
		CheckEliteIdentity:  true,
	}
}

// checkGeneration asserts the engine's structural invariants over the
// generation just committed: evaluated is the ranked population that was
// scored, next is its replacement, elite the carried-forward subset.
func (inv Invariants) checkGeneration(cfg Config, evaluated, next, elite []Genome, history []GenerationSummary) {
	if !inv.Enabled {
		return
	}

	if inv.CheckPopulationSize {
		invariantAssert(len(next) == cfg.PopulationSize,
			fmt.Sprintf("population size %d != configured %d", len(next), cfg.PopulationSize))
		invariantAssert(len(evaluated) == cfg.PopulationSize,
			fmt.Sprintf("evaluated population size %d != configured %d", len(evaluated), cfg.PopulationSize))
	}

	if inv.CheckBounds {
		for _, g := range next {
			invariantAssert(len(g.Params) == len(cfg.Bounds),
				fmt.Sprintf("genome %s has %d params, bounds declare %d", g.ID, len(g.Params), len(cfg.Bounds)))
			for i, p := range cfg.Bounds {
				v := g.Params[i]
				invariantAssert(v >= p.Min && v <= p.Max,
					fmt.Sprintf("genome %s param %s=%v outside [%v, %v]", g.ID, p.Name, v, p.Min, p.Max))
			}
		}
	}

	if inv.CheckMonotonicBest && len(history) >= 2 {
		prev, cur := history[len(history)-2], history[len(history)-1]
		invariantAssert(cur.Best >= prev.Best,
			fmt.Sprintf("best fitness regressed: gen %d best %v < gen %d best %v",
				cur.Generation, cur.Best, prev.Generation, prev.Best))
	}

	if inv.CheckEliteIdentity {
		for i, g := range elite {
			invariantAssert(i < len(next) && next[i].ID == g.ID,
				fmt.Sprintf("elite %s missing from slot %d of next population", g.ID, i))
			invariantAssert(next[i].Evaluated == g.Evaluated && next[i].Fitness == g.Fitness,
				fmt.Sprintf("elite %s fitness changed across replacement", g.ID))
		}
	}
}

// invariantAssert panics with a tagged message if the condition is false.
func invariantAssert(condition bool, message string) {
	if !condition {
		panic("evotune: invariant violation: " + message)
	}
}
