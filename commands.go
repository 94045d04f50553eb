package main

import (
	"flag"
	"fmt"

	"checkers/config"
	"checkers/experiments"
	"checkers/experiments/metrics"
	"checkers/qlearn"
	"checkers/storage"

	"github.com/rs/zerolog/log"
)

func runTrain(cfg *config.Configuration, args []string) error {
	qc := cfg.QLearning()
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.IntVar(&qc.Episodes, "episodes", qc.Episodes, "Number of training episodes")
	fs.Uint64Var(&qc.Seed, "seed", qc.Seed, "Random seed")
	fs.StringVar(&qc.Opponent, "opponent", qc.Opponent, "Training opponent: random or heuristic")
	dataDir := fs.String("data", cfg.DataDir, "Directory of the Q-table database")
	outDir := fs.String("out", cfg.Experiments.OutputDir, "Directory for training curves")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log.Info().Msgf("training %d episodes against %s...", qc.Episodes, qc.Opponent)
	result, err := qlearn.Train(qc)
	if err != nil {
		return err
	}
	log.Info().Msgf("trained %d Q-values", result.Table.Len())

	store, err := storage.Open(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveTable(result.Table); err != nil {
		return fmt.Errorf("save table: %w", err)
	}
	info := storage.TrainingInfo{Config: qc, Entries: result.Table.Len(), FinalEpsilon: result.FinalEpsilon}
	if n := len(result.EvalSteps); n > 0 {
		info.FinalVsRandom = result.WinRateVsRandom[n-1]
		info.FinalVsHeur = result.WinRateVsHeuristic[n-1]
		log.Info().Msgf("final winrates: vs Random=%.3f, vs Heuristic=%.3f", info.FinalVsRandom, info.FinalVsHeur)
	}
	if err := store.SaveTrainingInfo(info); err != nil {
		return fmt.Errorf("save training info: %w", err)
	}

	return writeTrainingCurves(result, *outDir)
}

func writeTrainingCurves(result qlearn.Result, root string) error {
	writer, err := metrics.NewWriter(root, "training")
	if err != nil {
		return err
	}

	episodes := make([]metrics.TrainingRecord, len(result.Rewards))
	for i := range result.Rewards {
		episodes[i] = metrics.TrainingRecord{Episode: i + 1, Reward: result.Rewards[i], Length: result.EpisodeLengths[i]}
	}
	if err := writer.WriteTraining(episodes); err != nil {
		return err
	}

	evaluations := make([]metrics.EvaluationRecord, len(result.EvalSteps))
	for i := range result.EvalSteps {
		evaluations[i] = metrics.EvaluationRecord{
			Episode:     result.EvalSteps[i],
			VsRandom:    result.WinRateVsRandom[i],
			VsHeuristic: result.WinRateVsHeuristic[i],
		}
	}
	if err := writer.WriteEvaluations(evaluations); err != nil {
		return err
	}
	log.Info().Msgf("saved training curves to %s", writer.Dir())
	return nil
}

func loadTable(dataDir string) (*qlearn.Table, error) {
	store, err := storage.Open(dataDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	table, err := store.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if table.Len() == 0 {
		log.Warn().Msgf("no Q-table stored in %s, the RL agent plays the first legal move", dataDir)
	}
	return table, nil
}

func runEvaluate(cfg *config.Configuration, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	games := fs.Int("games", 300, "Games per matchup")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	dataDir := fs.String("data", cfg.DataDir, "Directory of the Q-table database")
	outDir := fs.String("out", cfg.Experiments.OutputDir, "Directory for results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := loadTable(*dataDir)
	if err != nil {
		return err
	}

	x, err := experiments.RunHeadToHead(table, *games, *seed, cfg.MaxTurns)
	if err != nil {
		return err
	}
	for _, m := range x.Matchups() {
		log.Info().Msgf("%s: %.3f (%d draws)", m.Name, m.Agent1WinRate(), m.Draws)
	}
	_, err = x.Save(*outDir)
	return err
}

func runExperiment(cfg *config.Configuration, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ContinueOnError)
	kind := fs.String("kind", "parallelization", "Experiment: parallelization, cutoff or custom")
	games := fs.Int("games", cfg.Experiments.Games, "Games per matchup")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	outDir := fs.String("out", cfg.Experiments.OutputDir, "Directory for results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var x *experiments.Experiment
	var err error
	switch *kind {
	case "parallelization":
		x, err = experiments.RunParallelizationExperiment(*games, *seed, cfg.MaxTurns)
	case "cutoff":
		x, err = experiments.RunCutoffExperiment(*games, *seed, cfg.MaxTurns)
	case "custom":
		// The configured searcher against a sequential one with the same budget
		custom := metrics.AgentConfig{
			ID:         1,
			Goroutines: cfg.Search.Goroutines,
			Episodes:   cfg.Search.Episodes,
			Duration:   cfg.Search.Duration,
			Cutoff:     cfg.Search.Cutoff,
		}
		baseline := custom
		baseline.ID = 0
		baseline.Goroutines = 1
		x, err = experiments.RunMCTSExperiment("custom", baseline, []metrics.AgentConfig{custom}, *games, *seed, cfg.MaxTurns)
	default:
		return fmt.Errorf("unknown experiment %q", *kind)
	}
	if err != nil {
		return err
	}
	for _, m := range x.Matchups() {
		log.Info().Msgf("%s: %d-%d with %d draws", m.Name, m.Agent1Wins, m.Agent2Wins, m.Draws)
	}
	_, err = x.Save(*outDir)
	return err
}
