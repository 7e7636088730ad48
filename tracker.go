package evotune

// bestTracker retains the best genome ever observed across a run,
// independently of the current population. Its fitness is monotonically
// non-decreasing by construction: a worse generation simply leaves the
// previous champion in place, so the monotonicity contract holds even if
// per-generation elitism were broken.
type bestTracker struct {
	best Genome
	set  bool
}

// Observe offers the top genome of a ranked generation to the tracker.
// It keeps a clone, never a reference into the live population.
func (t *bestTracker) Observe(g Genome) {
	if !t.set || g.Fitness > t.best.Fitness {
		t.best = g.Clone()
		t.set = true
	}
}

// Best returns a copy of the champion and whether one exists yet.
func (t *bestTracker) Best() (Genome, bool) {
	if !t.set {
		return Genome{}, false
	}
	return t.best.Clone(), true
}
