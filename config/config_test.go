package config

import (
	"testing"
	"time"

	"checkers/qlearn"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("falling back to defaults", func(t *testing.T) {
		c, err := Load()

		require.NoError(t, err)
		require.Equal(t, "info", c.LogLevel)
		require.Equal(t, 200, c.MaxTurns)
		require.Equal(t, 8, c.Search.Goroutines)
		require.Equal(t, 30, c.Experiments.Games)
		require.Equal(t, qlearn.DefaultConfig(), c.QLearning(), "Training defaults match the trainer's")
	})

	t.Run("reading prefixed variables", func(t *testing.T) {
		t.Setenv("CHECKERS_SEED", "7")
		t.Setenv("CHECKERS_TRAIN_EPISODES", "100")
		t.Setenv("CHECKERS_TRAIN_OPPONENT", "random")
		t.Setenv("CHECKERS_MCTS_DURATION", "50ms")

		c, err := Load()

		require.NoError(t, err)
		require.Equal(t, uint64(7), c.Seed)
		require.Equal(t, 100, c.QLearning().Episodes)
		require.Equal(t, qlearn.OpponentRandom, c.QLearning().Opponent)
		require.Equal(t, uint64(7), c.QLearning().Seed)
		require.Equal(t, 50*time.Millisecond, c.Search.Duration)
	})

	t.Run("rejecting malformed values", func(t *testing.T) {
		t.Setenv("CHECKERS_TRAIN_EPISODES", "many")

		_, err := Load()

		require.Error(t, err)
	})
}
