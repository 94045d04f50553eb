package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome, also used as the virtual loss

// ucb scores children of one parent: q/n + sqrt(c^2*ln(N)/n)
type ucb struct {
	numerator float64
}

func newUCB(cSquared float64, parentVisits float64) ucb {
	if parentVisits <= 0 {
		panic("parent visits must be positive")
	}
	return ucb{numerator: cSquared * math.Log(parentVisits)}
}

func (u ucb) evaluate(rewards float64, visits float64) float64 {
	if visits <= 0 {
		panic("child visits must be positive")
	}
	return rewards/visits + math.Sqrt(u.numerator/visits)
}
