package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evotune"
)

func testConfig() evotune.Config {
	return evotune.Config{
		PopulationSize: 8,
		EliteFraction:  0.25,
		CrossoverRate:  0.5,
		MutationRate:   0.1,
		Seed:           42,
		Bounds: evotune.Bounds{
			{Name: "x", Min: 0, Max: 1},
			{Name: "y", Min: -1, Max: 1},
		},
	}
}

func TestRunRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	runID, err := s.CreateRun(ctx, "smoke", "market", testConfig())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	sums := []evotune.GenerationSummary{
		{Generation: 0, Best: 1.5, Avg: 0.8, Worst: 0.1, BestID: "gen0_member03", Evaluations: 8, Elapsed: 120 * time.Millisecond},
		{Generation: 1, Best: 2.1, Avg: 1.2, Worst: 0.4, BestID: "gen1_member00", Evaluations: 6, Elapsed: 95 * time.Millisecond},
	}
	for _, sum := range sums {
		require.NoError(t, s.SaveGeneration(ctx, runID, sum))
	}

	hist, err := s.History(ctx, runID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, sums, hist)

	report := evotune.FinalReport{
		Best:        evotune.Genome{ID: "gen1_member00", Fitness: 2.1},
		Generations: 2,
		Evaluations: 14,
		Reason:      evotune.StopMaxGenerations,
	}
	require.NoError(t, s.FinishRun(ctx, runID, report))

	meta, err := s.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "smoke", meta.Name)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 8, meta.PopulationSize)
	assert.Equal(t, string(evotune.StopMaxGenerations), meta.StopReason)
	assert.Equal(t, 2, meta.Generations)
	assert.Equal(t, 14, meta.Evaluations)
	assert.InDelta(t, 2.1, meta.BestFitness, 1e-9)
}

func TestChampionParamsByName(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	cfg := testConfig()
	runID, err := s.CreateRun(ctx, "champs", "market", cfg)
	require.NoError(t, err)

	g0 := evotune.Genome{ID: "gen0_member01", Generation: 0, Params: []float64{0.3, -0.5}, Fitness: 1.0, Evaluated: true}
	g1 := evotune.Genome{ID: "gen3_member07", Generation: 3, Params: []float64{0.9, 0.2}, Fitness: 4.2, Evaluated: true}
	require.NoError(t, s.SaveChampion(ctx, runID, 0, g0, cfg.Bounds))
	require.NoError(t, s.SaveChampion(ctx, runID, 3, g1, cfg.Bounds))

	id, fit, params, err := s.BestChampion(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "gen3_member07", id)
	assert.InDelta(t, 4.2, fit, 1e-9)
	assert.InDelta(t, 0.9, params["x"], 1e-9)
	assert.InDelta(t, 0.2, params["y"], 1e-9)
}

func TestGetRunMissing(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetRun(context.Background(), "no-such-run")
	assert.Error(t, err)
}
