package engine

import (
	"errors"

	"checkers/experiments/metrics"
)

// ErrAgentMove reports an agent that failed to produce a legal move.
var ErrAgentMove = errors.New("agent move failed")

type Engine interface {
	// Run plays a game till there's a winner or the turn cap is reached, in
	// which case the winner is "draw"
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
