package experiments

import (
	"fmt"
	"time"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/qlearn"
	"checkers/searcher"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Contender is an agent setup and a way to build a fresh agent per game.
type Contender struct {
	Config metrics.AgentConfig
	New    agent.Factory
}

// Experiment accumulates the records of a series of matchups.
type Experiment struct {
	name        string
	games       int
	maxTurns    int
	count       int
	configs     []metrics.AgentConfig
	matchups    []metrics.MatchupRecord
	gameRecords []metrics.GameRecord
	moveRecords []metrics.MoveRecord
}

func NewExperiment(name string, games, maxTurns int) *Experiment {
	if games <= 0 {
		games = NumGames
	}
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}
	return &Experiment{name: name, games: games, maxTurns: maxTurns}
}

func (x *Experiment) Matchups() []metrics.MatchupRecord {
	return x.matchups
}

// Run plays the configured number of games with black always moving first.
// Game i builds both agents with seed+i.
func (x *Experiment) Run(name string, black, red Contender, seed uint64) (metrics.MatchupRecord, error) {
	x.addConfig(black.Config)
	x.addConfig(red.Config)
	record := metrics.MatchupRecord{Name: name, Agent1: black.Config.ID, Agent2: red.Config.ID}

	log.Info().Msgf("starting matchup %s between agent1=%d and agent2=%d...", name, black.Config.ID, red.Config.ID)

	for i := 0; i < x.games; i++ {
		gameSeed := seed + uint64(i)
		e := engine.NewLocalEngine(black.New(gameSeed), red.New(gameSeed), engine.WithMaxTurns(x.maxTurns))
		winner, gameMetric, moveMetrics, err := e.Run()
		if err != nil {
			return record, fmt.Errorf("%s game %d: %w", name, i+1, err)
		}

		x.count++
		x.gameRecords = append(x.gameRecords, metrics.GameRecord{
			ID:         x.count,
			Agent1:     black.Config.ID,
			Agent2:     red.Config.ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			x.moveRecords = append(x.moveRecords, metrics.MoveRecord{
				Game:       x.count,
				MoveMetric: mm,
			})
		}

		record.Games++
		switch winner {
		case game.Black.String():
			record.Agent1Wins++
		case game.Red.String():
			record.Agent2Wins++
		default:
			record.Draws++
		}
		log.Debug().Msgf("completed %s game %d of %d with winner: %s", name, i+1, x.games, winner)
	}

	log.Info().Msgf("completed matchup %s: %d-%d with %d draws", name, record.Agent1Wins, record.Agent2Wins, record.Draws)
	x.matchups = append(x.matchups, record)
	return record, nil
}

func (x *Experiment) addConfig(config metrics.AgentConfig) {
	for _, c := range x.configs {
		if c.ID == config.ID {
			return
		}
	}
	x.configs = append(x.configs, config)
}

// Save writes every record under root and returns the run directory.
func (x *Experiment) Save(root string) (string, error) {
	writer, err := metrics.NewWriter(root, x.name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(x.configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteMatchups(x.matchups); err != nil {
		return "", fmt.Errorf("failed to store matchups: %w", err)
	}
	if err := writer.WriteGameRecords(x.gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(x.moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %s experiment run %s in %s", x.name, writer.RunID(), writer.Dir())
	return writer.Dir(), nil
}

// Baseline contenders

func RandomContender(id int) Contender {
	return Contender{
		Config: metrics.AgentConfig{ID: id, Kind: "random"},
		New:    agent.NewRandomAgent,
	}
}

func HeuristicContender(id int) Contender {
	return Contender{
		Config: metrics.AgentConfig{ID: id, Kind: "heuristic"},
		New:    func(uint64) agent.Agent { return agent.NewHeuristicAgent(game.DefaultWeights()) },
	}
}

func QTableContender(id int, table *qlearn.Table) Contender {
	return Contender{
		Config: metrics.AgentConfig{ID: id, Kind: "qtable"},
		New:    func(seed uint64) agent.Agent { return qlearn.NewAgent(table, 0, seed) },
	}
}

func MCTSContender(config metrics.AgentConfig) Contender {
	config.Kind = "mcts"
	return Contender{
		Config: config,
		New: func(seed uint64) agent.Agent {
			return agent.NewEvaluationAgent(createMCTS(config, seed))
		},
	}
}

func createMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(config.Evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
