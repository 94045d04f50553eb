// Package qlearn trains a tabular Q-learning agent playing Black against a
// fixed opponent.
package qlearn

import (
	"errors"
	"fmt"

	"checkers/agent"
	"checkers/engine"
	"checkers/env"
	"checkers/game"
	"checkers/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	OpponentRandom    = "random"
	OpponentHeuristic = "heuristic"
)

// ErrUnknownOpponent reports an opponent name other than random or heuristic.
var ErrUnknownOpponent = errors.New("unknown opponent")

type Config struct {
	Episodes     int
	Alpha        float64
	Gamma        float64
	EpsilonStart float64
	EpsilonEnd   float64
	EpsilonDecay float64
	EvalInterval int // Episodes between win rate evaluations, 0 disables them
	EvalGames    int
	Seed         uint64
	Opponent     string
}

func DefaultConfig() Config {
	return Config{
		Episodes:     8000,
		Alpha:        0.15,
		Gamma:        0.99,
		EpsilonStart: 1.0,
		EpsilonEnd:   0.05,
		EpsilonDecay: 0.9993,
		EvalInterval: 250,
		EvalGames:    80,
		Seed:         42,
		Opponent:     OpponentHeuristic,
	}
}

type Result struct {
	Table              *Table
	Rewards            []float64 // Total reward per episode, from Black's side
	EpisodeLengths     []int
	EvalSteps          []int
	WinRateVsRandom    []float64
	WinRateVsHeuristic []float64
	FinalEpsilon       float64
}

// NewOpponent builds the named baseline agent.
func NewOpponent(name string, seed uint64) (agent.Agent, error) {
	switch name {
	case OpponentRandom:
		return agent.NewRandomAgent(seed), nil
	case OpponentHeuristic:
		return agent.NewHeuristicAgent(game.DefaultWeights()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, name)
	}
}

// Train runs config.Episodes episodes of one-step Q-learning. The learner's
// TD target looks past the opponent's reply: the value of the next state in
// which Black moves again, or the terminal reward if the game ended first.
func Train(config Config) (Result, error) {
	opponent, err := NewOpponent(config.Opponent, config.Seed+7)
	if err != nil {
		return Result{}, err
	}

	e, err := env.New()
	if err != nil {
		return Result{}, err
	}

	t := &trainer{
		config:   config,
		rng:      rand.New(rand.NewSource(config.Seed)),
		env:      e,
		table:    NewTable(),
		opponent: opponent,
	}

	result := Result{Table: t.table}
	epsilon := config.EpsilonStart
	for ep := 0; ep < config.Episodes; ep++ {
		reward, steps, err := t.episode(epsilon)
		if err != nil {
			return result, fmt.Errorf("episode %d: %w", ep+1, err)
		}
		result.Rewards = append(result.Rewards, reward)
		result.EpisodeLengths = append(result.EpisodeLengths, steps)
		epsilon = utils.Clamp(epsilon*config.EpsilonDecay, config.EpsilonEnd, 1.0)

		if config.EvalInterval > 0 && (ep+1)%config.EvalInterval == 0 {
			seed := config.Seed + 50000 + uint64(ep)
			vsRandom, err := Evaluate(t.table, OpponentRandom, config.EvalGames, seed)
			if err != nil {
				return result, err
			}
			vsHeuristic, err := Evaluate(t.table, OpponentHeuristic, config.EvalGames, seed+1000)
			if err != nil {
				return result, err
			}
			result.EvalSteps = append(result.EvalSteps, ep+1)
			result.WinRateVsRandom = append(result.WinRateVsRandom, vsRandom)
			result.WinRateVsHeuristic = append(result.WinRateVsHeuristic, vsHeuristic)
			log.Info().Msgf("episode %d/%d | eps=%.3f | wr_vs_random=%.2f | wr_vs_heuristic=%.2f",
				ep+1, config.Episodes, epsilon, vsRandom, vsHeuristic)
		}
	}
	result.FinalEpsilon = epsilon
	return result, nil
}

type trainer struct {
	config   Config
	rng      *rand.Rand
	env      *env.Env
	table    *Table
	opponent agent.Agent
}

func (t *trainer) episode(epsilon float64) (float64, int, error) {
	obs, _, err := t.env.Reset()
	if err != nil {
		return 0, 0, err
	}
	done := false
	total := 0.0
	steps := 0

	for !done {
		if t.env.State().SideToMove() != game.Black {
			next, reward, over, err := t.opponentStep()
			if err != nil {
				return total, steps, err
			}
			obs = next
			total -= reward
			done = over
			steps++
			continue
		}

		key := obs.Key
		n := len(t.env.LegalMoves())
		if n == 0 {
			break
		}
		action := t.table.Greedy(key, n)
		if t.rng.Float64() < epsilon {
			action = t.rng.Intn(n)
		}

		next, reward, terminated, truncated, _, err := t.env.Step(action)
		if err != nil {
			return total, steps, err
		}
		total += reward
		done = terminated || truncated
		steps++
		obs = next

		if done {
			t.table.update(key, action, reward, t.config.Alpha)
			continue
		}

		terminal := 0.0
		for !done && t.env.State().SideToMove() != game.Black {
			next, reward, over, err := t.opponentStep()
			if err != nil {
				return total, steps, err
			}
			obs = next
			total -= reward
			done = over
			steps++
			if done {
				terminal = -reward
			}
		}

		target := terminal
		if !done {
			target = reward + t.config.Gamma*t.table.Max(obs.Key, len(t.env.LegalMoves()))
		}
		t.table.update(key, action, target, t.config.Alpha)
	}
	return total, steps, nil
}

// opponentStep lets the opponent move and returns the reward from its side.
func (t *trainer) opponentStep() (env.Observation, float64, bool, error) {
	state := t.env.State()
	move, _, err := t.opponent.FindMove(state, nil)
	if err != nil {
		return env.Observation{}, 0, false, err
	}
	index := utils.FindIndex(t.env.LegalMoves(), move)
	obs, reward, terminated, truncated, _, err := t.env.Step(index)
	if err != nil {
		return obs, 0, false, err
	}
	return obs, reward, terminated || truncated, nil
}

// Evaluate plays games with the greedy table policy as Black against the named
// opponent and returns the fraction won.
func Evaluate(table *Table, opponentName string, games int, seed uint64) (float64, error) {
	if games <= 0 {
		return 0, nil
	}
	wins := 0
	for i := 0; i < games; i++ {
		opponent, err := NewOpponent(opponentName, seed+1+uint64(i))
		if err != nil {
			return 0, err
		}
		e := engine.NewLocalEngine(NewAgent(table, 0, seed+uint64(i)), opponent)
		winner, _, _, err := e.Run()
		if err != nil {
			return 0, err
		}
		if winner == game.Black.String() {
			wins++
		}
	}
	return float64(wins) / float64(games), nil
}
