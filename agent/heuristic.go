package agent

import (
	"math"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

type heuristicAgent struct {
	weights game.Weights
}

// NewHeuristicAgent returns a one-ply greedy agent. Among the legal moves it
// minimises the captures left to the opponent, then maximises game.Score.
// Ties go to the earliest move.
func NewHeuristicAgent(weights game.Weights) Agent {
	return heuristicAgent{weights: weights}
}

func (a heuristicAgent) FindMove(state game.GameState, _ []searcher.Segment) (game.Move, metrics.SearchMetric, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	i, err := a.SelectIndex(state, moves)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	return moves[i], metrics.SearchMetric{}, nil
}

// SelectIndex returns the position of the preferred move within moves.
func (a heuristicAgent) SelectIndex(state game.GameState, moves []game.Move) (int, error) {
	side := state.SideToMove()
	best := 0
	bestRisk, bestScore := math.Inf(-1), math.Inf(-1)
	for i, move := range moves {
		next, _, err := state.Play(move)
		if err != nil {
			return 0, err
		}
		risk := -float64(next.Board().CaptureCount(side.Opponent()))
		score := game.Score(next.Board(), side, a.weights)
		if risk > bestRisk || (risk == bestRisk && score > bestScore) {
			best, bestRisk, bestScore = i, risk, score
		}
	}
	return best, nil
}
