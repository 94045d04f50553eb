package experiments

import (
	"fmt"

	"checkers/experiments/metrics"
	"checkers/game"
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 11, Goroutines: 1, Duration: TimeBudget},
	{ID: 12, Goroutines: 2, Duration: TimeBudget},
	{ID: 13, Goroutines: 4, Duration: TimeBudget},
	{ID: 14, Goroutines: 8, Duration: TimeBudget},
	{ID: 15, Goroutines: 16, Duration: TimeBudget},
}

var cutoffConfigs = []metrics.AgentConfig{
	{ID: 21, Goroutines: 8, Duration: TimeBudget, Cutoff: 10},
	{ID: 22, Goroutines: 8, Duration: TimeBudget, Cutoff: 30},
	{ID: 23, Goroutines: 8, Duration: TimeBudget, Cutoff: 60},
	{ID: 24, Goroutines: 8, Duration: TimeBudget, Cutoff: 30, Evaluate: game.EvaluateWeighted(game.DefaultWeights())},
}

// RunParallelizationExperiment pairs a sequential searcher against searchers
// with more goroutines on the same time budget.
func RunParallelizationExperiment(games int, seed uint64, maxTurns int) (*Experiment, error) {
	baseline := metrics.AgentConfig{ID: 10, Goroutines: 1, Duration: TimeBudget}
	return runAgainstBaseline("parallelization", baseline, parallelConfigs, games, seed, maxTurns)
}

// RunCutoffExperiment pairs a full-playout searcher against searchers that
// stop rollouts early and evaluate the position.
func RunCutoffExperiment(games int, seed uint64, maxTurns int) (*Experiment, error) {
	baseline := metrics.AgentConfig{ID: 20, Goroutines: 8, Duration: TimeBudget}
	return runAgainstBaseline("cutoff", baseline, cutoffConfigs, games, seed, maxTurns)
}

// RunMCTSExperiment pits each config as Black against the baseline.
func RunMCTSExperiment(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig, games int, seed uint64, maxTurns int) (*Experiment, error) {
	return runAgainstBaseline(name, baseline, configs, games, seed, maxTurns)
}

func runAgainstBaseline(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig, games int, seed uint64, maxTurns int) (*Experiment, error) {
	x := NewExperiment(name, games, maxTurns)
	for i, config := range configs {
		matchup := fmt.Sprintf("agent %d vs baseline %d", config.ID, baseline.ID)
		if _, err := x.Run(matchup, MCTSContender(config), MCTSContender(baseline), seed+uint64(i)*1000); err != nil {
			return x, err
		}
	}
	return x, nil
}
