package agent

import (
	"math"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples moves in
// proportion to visits^(1/temperature), so higher temperatures explore more.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindMove(state game.GameState, lineage []searcher.Segment) (game.Move, metrics.SearchMetric, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	policy, metric := a.mcts.Simulate(state, lineage)
	probs := adjustTemperature(policy, moves, a.temperature)
	return sample(probs, moves, a.rng.Float64()), metric, nil
}

// adjustTemperature returns move probabilities aligned with moves. Moves the
// search never expanded get zero probability.
func adjustTemperature(policy map[game.Move]float64, moves []game.Move, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(moves))
	for i, move := range moves {
		probs[i] = math.Pow(policy[move], exponent)
		sum += probs[i]
	}
	if sum == 0 { // Nothing visited, fall back to uniform
		for i := range probs {
			probs[i] = 1.0 / float64(len(probs))
		}
		return probs
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(probs []float64, moves []game.Move, sampled float64) game.Move {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return moves[i]
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
