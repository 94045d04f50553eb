package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.GameState, lineage []searcher.Segment) (game.Move, metrics.SearchMetric, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	policy, metric := a.mcts.Simulate(state, lineage)
	return findMax(policy, moves), metric, nil
}

// findMax returns the most visited move, breaking ties by move generation
// order so that play is reproducible.
func findMax(policy map[game.Move]float64, moves []game.Move) game.Move {
	maxMove := moves[0]
	maxVisit := -1.0
	for _, move := range moves {
		if visit, ok := policy[move]; ok && visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
