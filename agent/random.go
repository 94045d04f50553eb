package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.GameState, _ []searcher.Segment) (game.Move, metrics.SearchMetric, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
