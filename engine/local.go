package engine

import (
	"fmt"
	"time"

	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/searcher"

	"github.com/rs/zerolog/log"
)

type Option func(e *localEngine)

// WithMaxTurns caps the number of steps before the game is declared a draw.
func WithMaxTurns(turns int) Option {
	return func(e *localEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithStartState starts the game from state instead of the opening.
func WithStartState(state game.GameState) Option {
	return func(e *localEngine) {
		e.state = state
	}
}

// WithObserver is called after every step, e.g. to print the board.
func WithObserver(observe func(move game.Move, state game.GameState)) Option {
	return func(e *localEngine) {
		e.observe = observe
	}
}

type localEngine struct {
	state    game.GameState
	agents   map[game.Side]agent.Agent
	maxTurns int
	observe  func(game.Move, game.GameState)
}

// NewLocalEngine runs a game between two in-process agents.
func NewLocalEngine(black, red agent.Agent, options ...Option) Engine {
	if black == nil || red == nil {
		panic("need an agent for each side")
	}
	e := &localEngine{
		state:    game.InitialState(),
		agents:   map[game.Side]agent.Agent{game.Black: black, game.Red: red},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	// Moves each side has not seen since its last search
	lineages := map[game.Side][]searcher.Segment{}

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s is starting", e.state.Player())

	turn := 0
	for !e.state.Outcome().Terminal() && turn < e.maxTurns {
		side := e.state.SideToMove()
		move, searchMetric, err := e.agents[side].FindMove(e.state, lineages[side])
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%w: %s at turn %d: %w", ErrAgentMove, side, turn+1, err)
		}
		lineages[side] = nil

		next, _, err := e.state.Play(move)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%w: %s at turn %d: %w", ErrAgentMove, side, turn+1, err)
		}
		turn++

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       side.String(),
			Move:         move.String(),
			Capture:      move.IsCapture(),
			SearchMetric: searchMetric,
		})
		segment := searcher.Segment{Move: move, StateHash: next.Hash()}
		lineages[game.Black] = append(lineages[game.Black], segment)
		lineages[game.Red] = append(lineages[game.Red], segment)

		e.state = next
		if e.observe != nil {
			e.observe(move, next)
		}
	}

	winner := e.state.Winner()
	if winner == "" {
		winner = meta.DRAW
		gameMetric.Truncated = true
		log.Debug().Msgf("stopped after %d turns without a winner", turn)
	} else {
		log.Debug().Msgf("game ended after %d turns with winner %s", turn, winner)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn
	return winner, gameMetric, moveMetrics, nil
}
