// Package store persists optimization runs to SQLite so results survive
// the process and can be compared across runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"evotune"
)

// RunStore records runs, per-generation summaries, and champions.
type RunStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &RunStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		evaluator TEXT NOT NULL,
		seed INTEGER NOT NULL,
		population_size INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		stop_reason TEXT,
		generations INTEGER,
		evaluations INTEGER,
		best_fitness REAL
	);

	CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		best REAL NOT NULL,
		avg REAL NOT NULL,
		worst REAL NOT NULL,
		best_id TEXT NOT NULL,
		evaluations INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		PRIMARY KEY (run_id, generation),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE TABLE IF NOT EXISTS champions (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		genome_id TEXT NOT NULL,
		fitness REAL NOT NULL,
		params TEXT NOT NULL,
		PRIMARY KEY (run_id, generation),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// RunMeta describes a stored run.
type RunMeta struct {
	ID             string
	Name           string
	Evaluator      string
	Seed           int64
	PopulationSize int
	StartedAt      time.Time
	FinishedAt     time.Time
	StopReason     string
	Generations    int
	Evaluations    int
	BestFitness    float64
}

// CreateRun registers a new run and returns its ID.
func (s *RunStore) CreateRun(ctx context.Context, name, evaluator string, cfg evotune.Config) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, name, evaluator, seed, population_size, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, evaluator, cfg.Seed, cfg.PopulationSize, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// SaveGeneration records one generation's summary.
func (s *RunStore) SaveGeneration(ctx context.Context, runID string, sum evotune.GenerationSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO generations
		(run_id, generation, best, avg, worst, best_id, evaluations, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sum.Generation, sum.Best, sum.Avg, sum.Worst,
		sum.BestID, sum.Evaluations, sum.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save generation %d: %w", sum.Generation, err)
	}
	return nil
}

// SaveChampion records the best genome seen as of a generation. Params
// are stored as a JSON object keyed by parameter name.
func (s *RunStore) SaveChampion(ctx context.Context, runID string, gen int, g evotune.Genome, bounds evotune.Bounds) error {
	named := make(map[string]float64, len(bounds))
	for i, p := range bounds {
		if i < len(g.Params) {
			named[p.Name] = g.Params[i]
		}
	}
	buf, err := json.Marshal(named)
	if err != nil {
		return fmt.Errorf("marshal champion params: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO champions
		(run_id, generation, genome_id, fitness, params)
		VALUES (?, ?, ?, ?, ?)`,
		runID, gen, g.ID, g.Fitness, string(buf),
	)
	if err != nil {
		return fmt.Errorf("save champion: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its final report.
func (s *RunStore) FinishRun(ctx context.Context, runID string, report evotune.FinalReport) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, stop_reason = ?, generations = ?,
		    evaluations = ?, best_fitness = ?
		WHERE id = ?`,
		time.Now().Unix(), string(report.Reason), report.Generations,
		report.Evaluations, report.Best.Fitness, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun loads a run's metadata.
func (s *RunStore) GetRun(ctx context.Context, runID string) (RunMeta, error) {
	var (
		m        RunMeta
		started  int64
		finished sql.NullInt64
		reason   sql.NullString
		gens     sql.NullInt64
		evals    sql.NullInt64
		bestFit  sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, evaluator, seed, population_size, started_at,
		       finished_at, stop_reason, generations, evaluations, best_fitness
		FROM runs WHERE id = ?`, runID,
	).Scan(&m.ID, &m.Name, &m.Evaluator, &m.Seed, &m.PopulationSize,
		&started, &finished, &reason, &gens, &evals, &bestFit)
	if err != nil {
		return RunMeta{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	m.StartedAt = time.Unix(started, 0)
	if finished.Valid {
		m.FinishedAt = time.Unix(finished.Int64, 0)
	}
	m.StopReason = reason.String
	m.Generations = int(gens.Int64)
	m.Evaluations = int(evals.Int64)
	m.BestFitness = bestFit.Float64
	return m, nil
}

// History returns all stored generation summaries for a run, in order.
func (s *RunStore) History(ctx context.Context, runID string) ([]evotune.GenerationSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT generation, best, avg, worst, best_id, evaluations, elapsed_ms
		FROM generations WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var out []evotune.GenerationSummary
	for rows.Next() {
		var (
			sum       evotune.GenerationSummary
			elapsedMS int64
		)
		if err := rows.Scan(&sum.Generation, &sum.Best, &sum.Avg, &sum.Worst,
			&sum.BestID, &sum.Evaluations, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		sum.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, sum)
	}
	return out, rows.Err()
}

// BestChampion returns the highest-fitness champion stored for a run.
func (s *RunStore) BestChampion(ctx context.Context, runID string) (string, float64, map[string]float64, error) {
	var (
		genomeID string
		fitness  float64
		paramsJS string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT genome_id, fitness, params
		FROM champions WHERE run_id = ?
		ORDER BY fitness DESC, generation DESC LIMIT 1`, runID,
	).Scan(&genomeID, &fitness, &paramsJS)
	if err != nil {
		return "", 0, nil, fmt.Errorf("best champion: %w", err)
	}
	params := map[string]float64{}
	if err := json.Unmarshal([]byte(paramsJS), &params); err != nil {
		return "", 0, nil, fmt.Errorf("decode champion params: %w", err)
	}
	return genomeID, fitness, params, nil
}
