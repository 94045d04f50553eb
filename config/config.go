package config

import (
	"fmt"
	"time"

	"checkers/meta"
	"checkers/qlearn"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable, e.g. CHECKERS_LOG_LEVEL.
const Prefix = "CHECKERS"

type Configuration struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	DataDir  string `envconfig:"DATA_DIR" default:"data/qtable"`
	Seed     uint64 `envconfig:"SEED" default:"42"`
	MaxTurns int    `envconfig:"MAX_TURNS" default:"200"`

	// Nested keys are prefixed with the section tag, e.g. CHECKERS_TRAIN_EPISODES
	Train struct {
		Episodes     int     `envconfig:"EPISODES" default:"8000"`
		Alpha        float64 `envconfig:"ALPHA" default:"0.15"`
		Gamma        float64 `envconfig:"GAMMA" default:"0.99"`
		EpsilonStart float64 `envconfig:"EPSILON_START" default:"1.0"`
		EpsilonEnd   float64 `envconfig:"EPSILON_END" default:"0.05"`
		EpsilonDecay float64 `envconfig:"EPSILON_DECAY" default:"0.9993"`
		EvalInterval int     `envconfig:"EVAL_INTERVAL" default:"250"`
		EvalGames    int     `envconfig:"EVAL_GAMES" default:"80"`
		Opponent     string  `envconfig:"OPPONENT" default:"heuristic"`
	} `envconfig:"TRAIN"`

	Search struct {
		Goroutines int           `envconfig:"GOROUTINES" default:"8"`
		Episodes   int           `envconfig:"EPISODES" default:"400"`
		Duration   time.Duration `envconfig:"DURATION" default:"0s"`
		Cutoff     int           `envconfig:"CUTOFF" default:"60"`
	} `envconfig:"MCTS"`

	Experiments struct {
		Games     int    `envconfig:"GAMES" default:"30"`
		OutputDir string `envconfig:"DIR" default:"experiments/results"`
	} `envconfig:"EXPERIMENT"`
}

// Load reads the configuration from CHECKERS_* environment variables,
// falling back to the defaults above.
func Load() (*Configuration, error) {
	var c Configuration
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = meta.MAX_TURNS
	}
	return &c, nil
}

// QLearning maps the training section onto a trainer config.
func (c *Configuration) QLearning() qlearn.Config {
	return qlearn.Config{
		Episodes:     c.Train.Episodes,
		Alpha:        c.Train.Alpha,
		Gamma:        c.Train.Gamma,
		EpsilonStart: c.Train.EpsilonStart,
		EpsilonEnd:   c.Train.EpsilonEnd,
		EpsilonDecay: c.Train.EpsilonDecay,
		EvalInterval: c.Train.EvalInterval,
		EvalGames:    c.Train.EvalGames,
		Seed:         c.Seed,
		Opponent:     c.Train.Opponent,
	}
}
