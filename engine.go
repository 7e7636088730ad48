package evotune

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// Engine owns one population and drives it through generations of
// evaluate -> rank -> select -> reproduce -> replace. An engine instance
// is exclusive owner of its population and random source; two engines
// never share either. All exported methods are safe for concurrent use,
// and every snapshot handed out is a copy.
type Engine struct {
	cfg  Config
	eval Evaluator
	rng  *rand.Rand

	mu          sync.Mutex
	pop         []Genome
	gen         int
	best        bestTracker
	history     []GenerationSummary
	evaluations int
	terminated  bool
}

// New builds an engine from a validated config and a caller-supplied
// evaluator, and initializes a random generation-0 population. All
// configuration errors are reported here, never during a run.
func New(cfg Config, eval Evaluator) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("config: evaluator must not be nil")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pop := make([]Genome, cfg.PopulationSize)
	for i := range pop {
		pop[i] = randomGenome(rng, cfg.Bounds, 0, i)
	}

	return &Engine{cfg: cfg, eval: eval, rng: rng, pop: pop}, nil
}

// Step runs exactly one generation and returns its summary.
//
// The step is atomic with respect to evaluator failures: either every
// genome gets a valid fitness and the population is replaced, or the
// error is returned and population, generation counter, best tracker and
// history are exactly as they were before the call. The caller may retry
// the same Step, fix the evaluator, or terminate.
func (e *Engine) Step(ctx context.Context) (GenerationSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.terminated {
		return GenerationSummary{}, ErrTerminated
	}

	start := time.Now()

	evaluated, evals, err := e.evaluateAll(ctx)
	if err != nil {
		return GenerationSummary{}, fmt.Errorf("generation %d: %w", e.gen, err)
	}

	// Commit point. Nothing below can fail.
	rankPopulation(evaluated)
	e.best.Observe(evaluated[0])

	elite := selectElite(evaluated, e.cfg.EliteFraction)
	next := e.reproduce(elite)

	e.pop = next
	best, avg, worst := populationStats(evaluated)
	summary := GenerationSummary{
		Generation:  e.gen,
		Best:        best,
		Avg:         avg,
		Worst:       worst,
		BestID:      evaluated[0].ID,
		Evaluations: evals,
		Elapsed:     time.Since(start),
	}
	e.gen++
	e.evaluations += evals
	e.history = append(e.history, summary)

	e.cfg.Invariants.checkGeneration(e.cfg, evaluated, next, elite, e.history)

	return summary, nil
}

// evaluateAll scores every genome that needs it and returns a fully
// evaluated copy of the population, leaving e.pop untouched. Evaluations
// are dispatched concurrently, bounded by the configured worker limit;
// the engine waits for the whole batch before anything is committed.
func (e *Engine) evaluateAll(ctx context.Context) ([]Genome, int, error) {
	out := clonePopulation(e.pop)

	var todo []int
	for i, g := range out {
		if !g.Evaluated || e.cfg.ReevaluateElites {
			todo = append(todo, i)
		}
	}
	if len(todo) == 0 {
		return out, 0, nil
	}

	fits := make([]float64, len(todo))
	errs := make([]error, len(todo))

	p := pool.New().WithMaxGoroutines(e.cfg.evalWorkers())
	for slot, idx := range todo {
		slot, g := slot, out[idx].Clone()
		p.Go(func() {
			fits[slot], errs[slot] = e.eval.Evaluate(ctx, g)
		})
	}
	p.Wait()

	// First failure in slot order, so the reported error is deterministic.
	for slot, err := range errs {
		if err != nil {
			return nil, 0, fmt.Errorf("evaluate %s: %w", out[todo[slot]].ID, err)
		}
	}

	for slot, idx := range todo {
		out[idx] = out[idx].withFitness(fits[slot])
	}
	return out, len(todo), nil
}

// reproduce fills the next population: elites carried forward unchanged
// (cached fitness retained), remaining slots bred from two distinct elite
// parents via crossover then mutation, tagged with the next generation's
// ids.
func (e *Engine) reproduce(elite []Genome) []Genome {
	n := e.cfg.PopulationSize
	childGen := e.gen + 1

	next := make([]Genome, 0, n)
	next = append(next, elite...)

	for k := len(next); k < n; k++ {
		a, b := e.samplePair(len(elite))
		id := genomeID(childGen, k)

		var child Genome
		if e.rng.Float64() < e.cfg.CrossoverRate {
			child = crossoverGenomes(e.rng, elite[a], elite[b], id, childGen)
		} else {
			child = cloneChild(elite[a], id, childGen)
		}
		next = append(next, mutateGenome(e.rng, child, e.cfg.Bounds, e.cfg.MutationRate, e.cfg.mutationSigma()))
	}
	return next
}

// samplePair draws two distinct indices in [0, n). Selection guarantees
// n >= 2.
func (e *Engine) samplePair(n int) (int, int) {
	a := e.rng.Intn(n)
	b := e.rng.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// Run loops Step until the convergence check stops it, the optional
// plateau window trips, or ctx is cancelled. Cancellation is checked
// between generations, never mid-evaluation, and is a valid stopping
// point, not an error: the report carries whatever best and history had
// accumulated. On any stop the engine terminates and refuses further
// steps. An evaluator failure aborts the run with the engine left
// un-terminated at the previous generation, so the caller can retry.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (FinalReport, error) {
	if opts.MaxGenerations < 1 {
		return FinalReport{}, fmt.Errorf("run: max generations must be >= 1 (got %d)", opts.MaxGenerations)
	}

	start := time.Now()
	for {
		reason, stop := e.stopReason(ctx, opts)
		if stop {
			e.Terminate()
			return e.report(reason, time.Since(start)), nil
		}
		summary, err := e.Step(ctx)
		if err != nil {
			// A ctx-aware evaluator may surface cancellation as an eval
			// failure; the step already rolled back, so treat it as the
			// between-generations cancel it effectively is.
			if ctx.Err() != nil {
				e.Terminate()
				return e.report(StopCancelled, time.Since(start)), nil
			}
			return FinalReport{}, err
		}
		if opts.OnGeneration != nil {
			opts.OnGeneration(summary)
		}
	}
}

func (e *Engine) stopReason(ctx context.Context, opts RunOptions) (StopReason, bool) {
	if ctx.Err() != nil {
		return StopCancelled, true
	}
	history := e.History()
	if !ShouldContinue(history, opts.MaxGenerations, opts.TargetFitness) {
		if opts.TargetFitness != nil && bestInHistory(history) >= *opts.TargetFitness {
			return StopTargetReached, true
		}
		return StopMaxGenerations, true
	}
	if Stalled(history, opts.StallGenerations) {
		return StopStalled, true
	}
	return "", false
}

func (e *Engine) report(reason StopReason, elapsed time.Duration) FinalReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	best, _ := e.best.Best()
	return FinalReport{
		Best:        best,
		Generations: e.gen,
		Evaluations: e.evaluations,
		Reason:      reason,
		Elapsed:     elapsed,
		History:     append([]GenerationSummary(nil), e.history...),
	}
}

// Terminate transitions the engine to its final state. Idempotent.
func (e *Engine) Terminate() {
	e.mu.Lock()
	e.terminated = true
	e.mu.Unlock()
}

// Terminated reports whether the engine has stopped for good.
func (e *Engine) Terminated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminated
}

// BestGenome returns a copy of the best genome ever evaluated. Calling it
// before any generation has run is a usage error.
func (e *Engine) BestGenome() (Genome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	best, ok := e.best.Best()
	if !ok {
		return Genome{}, ErrNotEvaluated
	}
	return best, nil
}

// History returns a copy of the per-generation summaries so far.
func (e *Engine) History() []GenerationSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]GenerationSummary(nil), e.history...)
}

// Generation returns the index of the next generation to be evaluated.
func (e *Engine) Generation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// Population returns a deep copy of the current population, e.g. for
// checkpointing.
func (e *Engine) Population() []Genome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clonePopulation(e.pop)
}

// Bounds returns the parameter layout the engine was built with.
func (e *Engine) Bounds() Bounds {
	return append(Bounds(nil), e.cfg.Bounds...)
}
