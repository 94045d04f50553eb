package experiments

import "checkers/qlearn"

// RunHeadToHead plays the learned table and the two baselines against each
// other: RL vs Random, RL vs Heuristic and Heuristic vs Random, with the
// first named agent as Black.
func RunHeadToHead(table *qlearn.Table, games int, seed uint64, maxTurns int) (*Experiment, error) {
	rl := QTableContender(1, table)
	heuristic := HeuristicContender(2)
	random := RandomContender(3)

	x := NewExperiment("head_to_head", games, maxTurns)
	if _, err := x.Run("RL vs Random", rl, random, seed+1000); err != nil {
		return x, err
	}
	if _, err := x.Run("RL vs Heuristic", rl, heuristic, seed+2000); err != nil {
		return x, err
	}
	if _, err := x.Run("Heuristic vs Random", heuristic, random, seed+3000); err != nil {
		return x, err
	}
	return x, nil
}
