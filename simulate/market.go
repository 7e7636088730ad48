// Package simulate provides a synthetic-market fitness evaluator for
// trading-strategy genomes. Each genome parameterizes a simple
// momentum/mean-reversion strategy; fitness is a Sharpe-style score with
// a drawdown penalty, averaged over a configurable number of simulated
// market paths. The simulation is seeded per genome, so repeated
// evaluations of the same genome return the same score and the engine's
// elite fitness caching stays consistent.
package simulate

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"evotune"
)

// Parameter names of a strategy genome, in bounds order.
const (
	ParamRiskTolerance  = "risk_tolerance"
	ParamMomentumWeight = "momentum_weight"
	ParamMeanRevWeight  = "mean_reversion_weight"
	ParamVolThreshold   = "volatility_threshold"
	ParamPositionSize   = "position_size_factor"
)

// StrategyBounds returns the parameter layout a market evaluator expects.
func StrategyBounds() evotune.Bounds {
	return evotune.Bounds{
		{Name: ParamRiskTolerance, Min: 0, Max: 1},
		{Name: ParamMomentumWeight, Min: 0, Max: 1},
		{Name: ParamMeanRevWeight, Min: 0, Max: 1},
		{Name: ParamVolThreshold, Min: 0, Max: 1},
		{Name: ParamPositionSize, Min: 0.1, Max: 1},
	}
}

// Config controls the market simulation.
type Config struct {
	// Periods per simulated path.
	Periods int
	// Trials is the number of independent paths averaged into one score.
	Trials int
	// Volatility is the per-period standard deviation of market moves.
	Volatility float64
	// Seed mixes into each genome's private path generator.
	Seed int64
}

// DefaultConfig mirrors the reference simulation: 100 periods per path,
// 2% per-period volatility.
func DefaultConfig() Config {
	return Config{Periods: 100, Trials: 16, Volatility: 0.02, Seed: 1}
}

// Evaluator scores strategy genomes against simulated markets. Safe for
// concurrent use: each Evaluate call builds its own random source.
type Evaluator struct {
	cfg Config
}

// New validates the simulation config and returns an evaluator.
func New(cfg Config) (*Evaluator, error) {
	if cfg.Periods < 2 {
		return nil, fmt.Errorf("simulate: periods must be >= 2 (got %d)", cfg.Periods)
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("simulate: trials must be >= 1 (got %d)", cfg.Trials)
	}
	if cfg.Volatility <= 0 {
		return nil, fmt.Errorf("simulate: volatility must be > 0 (got %v)", cfg.Volatility)
	}
	return &Evaluator{cfg: cfg}, nil
}

var _ evotune.Evaluator = (*Evaluator)(nil)

// Evaluate runs cfg.Trials simulated paths for the genome and returns
// the mean fitness. The path generator is seeded from the run seed and
// the genome id, so the score is stable per genome within a run.
func (e *Evaluator) Evaluate(ctx context.Context, g evotune.Genome) (float64, error) {
	if len(g.Params) != 5 {
		return 0, fmt.Errorf("simulate: genome %s has %d params, want 5", g.ID, len(g.Params))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed ^ idSeed(g.ID)))
	total := 0.0
	for t := 0; t < e.cfg.Trials; t++ {
		total += e.simulatePath(rng, g)
	}
	return total / float64(e.cfg.Trials), nil
}

// simulatePath walks one synthetic market. Above the volatility
// threshold the strategy fades the move (mean reversion), below it the
// strategy follows it (momentum); risk tolerance and position size scale
// the exposure. Fitness is sharpe*100 minus half the max drawdown in
// percent, floored at zero.
func (e *Evaluator) simulatePath(rng *rand.Rand, g evotune.Genome) float64 {
	risk := g.Params[0]
	momentum := g.Params[1]
	meanRev := g.Params[2]
	volThreshold := g.Params[3]
	posSize := g.Params[4]

	returns := make([]float64, e.cfg.Periods)
	for i := range returns {
		move := rng.NormFloat64() * e.cfg.Volatility

		var signal float64
		if math.Abs(move) > volThreshold {
			signal = -move * meanRev
		} else {
			signal = move * momentum
		}
		signal *= risk * posSize

		returns[i] = signal * move
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	std := math.Sqrt(variance / float64(len(returns)))

	sharpe := 0.0
	if std > 0 {
		sharpe = mean / std
	}

	fitness := sharpe*100 - maxDrawdown(returns)*50
	if fitness < 0 {
		return 0
	}
	return fitness
}

// maxDrawdown computes the worst peak-to-trough decline of the cumulative
// return curve.
func maxDrawdown(returns []float64) float64 {
	equity := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		equity *= 1 + r
		if equity > peak {
			peak = equity
		}
		if dd := (peak - equity) / peak; dd > worst {
			worst = dd
		}
	}
	return worst
}

// idSeed folds a genome id into a stable 63-bit seed.
func idSeed(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64() & math.MaxInt64)
}
