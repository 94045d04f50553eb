package qlearn

import (
	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"golang.org/x/exp/rand"
)

type tableAgent struct {
	table   *Table
	epsilon float64
	rng     *rand.Rand
}

// NewAgent returns an epsilon-greedy agent over table. With epsilon 0 it
// always plays the greedy move.
func NewAgent(table *Table, epsilon float64, seed uint64) agent.Agent {
	return &tableAgent{table: table, epsilon: epsilon, rng: rand.New(rand.NewSource(seed))}
}

func (a *tableAgent) FindMove(state game.GameState, _ []searcher.Segment) (game.Move, metrics.SearchMetric, error) {
	moves, err := state.LegalMoves()
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, agent.ErrNoMoves
	}
	return moves[a.selectIndex(state.Key(), len(moves))], metrics.SearchMetric{}, nil
}

func (a *tableAgent) selectIndex(key game.StateKey, n int) int {
	if a.epsilon > 0 && a.rng.Float64() < a.epsilon {
		return a.rng.Intn(n)
	}
	return a.table.Greedy(key, n)
}
