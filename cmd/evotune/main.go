// Command evotune runs an evolutionary search over trading-strategy
// parameters against a simulated market, with optional TUI, web
// dashboard, SQLite run store, and periodic checkpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evotune"
	"evotune/dash"
	"evotune/logx"
	"evotune/simulate"
	"evotune/store"
	"evotune/tui"
)

func main() {
	var (
		configPath = flag.String("config", "evotune.yaml", "path to run configuration")
		resumePath = flag.String("resume", "", "resume from a checkpoint file")
	)
	flag.Parse()

	if err := run(*configPath, *resumePath); err != nil {
		fmt.Fprintln(os.Stderr, logx.Errorf("evotune: %v", err))
		os.Exit(1)
	}
}

func run(configPath, resumePath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eval, err := simulate.New(cfg.MarketConfig())
	if err != nil {
		return err
	}

	engCfg := cfg.EngineConfig()
	var eng *evotune.Engine
	if resumePath != "" {
		cp, err := evotune.LoadCheckpoint(resumePath)
		if err != nil {
			return err
		}
		eng, err = evotune.Resume(engCfg, eval, cp)
		if err != nil {
			return err
		}
		logx.LogCheckpoint(resumePath, cp.Generation)
	} else {
		eng, err = evotune.New(engCfg, eval)
		if err != nil {
			return err
		}
	}

	// Optional surfaces. Each degrades to off when unavailable.
	var hub *dash.Hub
	if cfg.Output.DashboardPort > 0 {
		hub = dash.NewHub()
		port := dash.FindAvailablePort(cfg.Output.DashboardPort)
		go func() {
			if err := hub.Serve(fmt.Sprintf(":%d", port)); err != nil {
				fmt.Fprintln(os.Stderr, logx.Warnf("dashboard: %v", err))
			}
		}()
		fmt.Println(logx.Highlight(fmt.Sprintf("Dashboard: http://localhost:%d", port)))
	}

	var runStore *store.RunStore
	var runID string
	if cfg.Output.StorePath != "" {
		runStore, err = store.Open(cfg.Output.StorePath)
		if err != nil {
			return err
		}
		defer runStore.Close()
		runID, err = runStore.CreateRun(ctx, cfg.Run.Name, "market", engCfg)
		if err != nil {
			return err
		}
	}

	tuiOn := false
	if cfg.Output.TUI {
		if err := tui.Start(ctx, tui.Config{Title: cfg.Run.Name, Evaluator: "market"}); err == nil {
			tuiOn = true
			defer tui.Stop()
		}
	}

	opts := cfg.RunOptions()
	logx.LogRunStart(engCfg.PopulationSize, opts.MaxGenerations, engCfg.EvalWorkers, engCfg.Seed)

	start := time.Now()
	prevBest := 0.0
	haveBest := false

	opts.OnGeneration = func(sum evotune.GenerationSummary) {
		logx.LogGeneration(sum.Generation, sum.Best, sum.Avg, sum.Worst, sum.Evaluations, sum.Elapsed)

		if best, err := eng.BestGenome(); err == nil && (!haveBest || best.Fitness > prevBest) {
			logx.LogNewBest(sum.Generation, best.ID, prevBest, best.Fitness)
			if tuiOn {
				logx.LogBestImproved(prevBest, best.Fitness, best.ID)
			}
			hub.SendBest(best, engCfg.Bounds)
			if runStore != nil {
				if err := runStore.SaveChampion(ctx, runID, sum.Generation, best, engCfg.Bounds); err != nil {
					fmt.Fprintln(os.Stderr, logx.Warnf("store: %v", err))
				}
			}
			prevBest = best.Fitness
			haveBest = true
		}

		hub.SendGeneration(sum)
		if runStore != nil {
			if err := runStore.SaveGeneration(ctx, runID, sum); err != nil {
				fmt.Fprintln(os.Stderr, logx.Warnf("store: %v", err))
			}
		}
		if tuiOn {
			pushSnapshot(eng, cfg, sum, start, opts.MaxGenerations)
			logx.LogGenerationDone(sum.Generation, sum.Best, sum.Evaluations)
		}

		if cfg.Output.CheckpointPath != "" && cfg.Output.CheckpointEvery > 0 &&
			(sum.Generation+1)%cfg.Output.CheckpointEvery == 0 {
			saveCheckpoint(eng, cfg.Output.CheckpointPath, sum.Generation)
		}
	}

	report, err := eng.Run(ctx, opts)
	if err != nil {
		return err
	}

	// Final checkpoint so a finished run can be inspected or extended
	if cfg.Output.CheckpointPath != "" {
		saveCheckpoint(eng, cfg.Output.CheckpointPath, report.Generations-1)
	}

	hub.SendReport(report)
	if runStore != nil {
		if err := runStore.FinishRun(ctx, runID, report); err != nil {
			fmt.Fprintln(os.Stderr, logx.Warnf("store: %v", err))
		}
	}
	if tuiOn {
		logx.LogRunFinished(string(report.Reason), report.Best.Fitness)
	}

	logx.LogRunDone(string(report.Reason), report.Generations, report.Evaluations, report.Best.Fitness, report.Elapsed)
	printChampion(report.Best, engCfg.Bounds)
	return nil
}

func saveCheckpoint(eng *evotune.Engine, path string, gen int) {
	if err := evotune.SaveCheckpoint(path, eng.Snapshot()); err != nil {
		fmt.Fprintln(os.Stderr, logx.Warnf("checkpoint: %v", err))
		return
	}
	logx.LogCheckpoint(path, gen)
}

func pushSnapshot(eng *evotune.Engine, cfg *FileConfig, sum evotune.GenerationSummary, start time.Time, maxGens int) {
	rate := 0.0
	if sum.Elapsed > 0 {
		rate = float64(sum.Evaluations) / sum.Elapsed.Seconds()
	}
	best, _ := eng.BestGenome()
	tui.PushState(tui.StateSnapshot{
		RunName:        cfg.Run.Name,
		Evaluator:      "market",
		StartTime:      start,
		Generation:     sum.Generation + 1,
		MaxGenerations: maxGens,
		BestFitness:    best.Fitness,
		AvgFitness:     sum.Avg,
		WorstFitness:   sum.Worst,
		BestID:         best.ID,
		Evaluations:    sum.Evaluations,
		RatePerSec:     rate,
		PopulationSize: cfg.Engine.PopulationSize,
		EliteCount:     evotune.EliteCount(cfg.Engine.PopulationSize, cfg.Engine.EliteFraction),
		Workers:        cfg.Engine.Workers,
	})
}

func printChampion(g evotune.Genome, bounds evotune.Bounds) {
	fmt.Println()
	fmt.Println(logx.Successf("Champion %s (fitness %.4f)", g.ID, g.Fitness))
	for i, p := range bounds {
		if i < len(g.Params) {
			fmt.Printf("  %-24s %.4f\n", p.Name, g.Params[i])
		}
	}
}
