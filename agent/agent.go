package agent

import (
	"errors"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

// ErrNoMoves reports a call on a state where the side to move has no legal move.
var ErrNoMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns the next step for the side to move and search metrics
	// (if collected). lineage lists the moves played since the agent's last
	// call, which searching agents use to reuse their tree.
	FindMove(state game.GameState, lineage []searcher.Segment) (game.Move, metrics.SearchMetric, error)
}

// Factory builds a fresh agent for one game, seeded for reproducibility.
type Factory func(seed uint64) Agent

func legalMoves(state game.GameState) ([]game.Move, error) {
	moves, err := state.LegalMoves()
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}
	return moves, nil
}
