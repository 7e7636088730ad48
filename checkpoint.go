package evotune

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Checkpoint is a plain-record snapshot of a run: parameter vectors,
// fitness, ids and history, nothing engine-internal. The core never
// persists anything on its own; checkpointing is a caller decision.
type Checkpoint struct {
	Version     int                 `json:"version"`
	SavedAtUnix int64               `json:"saved_at_unix"`
	Generation  int                 `json:"generation"`
	Evaluations int                 `json:"evaluations"`
	Best        *Genome             `json:"best,omitempty"`
	Population  []Genome            `json:"population"`
	History     []GenerationSummary `json:"history"`
}

const checkpointVersion = 1

// Snapshot captures the engine's current state as plain records.
func (e *Engine) Snapshot() Checkpoint {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := Checkpoint{
		Version:     checkpointVersion,
		Generation:  e.gen,
		Evaluations: e.evaluations,
		Population:  clonePopulation(e.pop),
		History:     append([]GenerationSummary(nil), e.history...),
	}
	if best, ok := e.best.Best(); ok {
		cp.Best = &best
	}
	return cp
}

// SaveCheckpoint writes the checkpoint as JSON via tmp-file + rename so a
// crash mid-write never leaves a truncated checkpoint behind.
func SaveCheckpoint(path string, cp Checkpoint) error {
	cp.Version = checkpointVersion
	cp.SavedAtUnix = time.Now().Unix()

	b, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path) // atomic replace
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint.
func LoadCheckpoint(path string) (Checkpoint, error) {
	var cp Checkpoint
	b, err := os.ReadFile(path)
	if err != nil {
		return cp, err
	}
	if err := json.Unmarshal(b, &cp); err != nil {
		return cp, err
	}
	if cp.Version != checkpointVersion {
		return cp, fmt.Errorf("checkpoint: unsupported version %d", cp.Version)
	}
	return cp, nil
}

// Resume rebuilds an engine from a checkpoint. The config must match the
// checkpointed run's shape (population size and parameter count); the
// random source restarts from cfg.Seed, so a resumed run is reproducible
// but not bit-identical to the uninterrupted one.
func Resume(cfg Config, eval Evaluator, cp Checkpoint) (*Engine, error) {
	e, err := New(cfg, eval)
	if err != nil {
		return nil, err
	}
	if len(cp.Population) != cfg.PopulationSize {
		return nil, fmt.Errorf("checkpoint: population size %d != configured %d",
			len(cp.Population), cfg.PopulationSize)
	}
	for _, g := range cp.Population {
		if len(g.Params) != len(cfg.Bounds) {
			return nil, fmt.Errorf("checkpoint: genome %s has %d params, bounds declare %d",
				g.ID, len(g.Params), len(cfg.Bounds))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pop = clonePopulation(cp.Population)
	e.gen = cp.Generation
	e.evaluations = cp.Evaluations
	e.history = append([]GenerationSummary(nil), cp.History...)
	if cp.Best != nil {
		e.best.Observe(*cp.Best)
	}
	return e, nil
}
