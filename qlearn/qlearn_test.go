package qlearn

import (
	"math"
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	key := game.InitialState().Key()

	t.Run("reading missing entries as zero", func(t *testing.T) {
		table := NewTable()
		require.Zero(t, table.Get(key, 3))
		require.Zero(t, table.Max(key, 5))
		require.Zero(t, table.Greedy(key, 0))
	})

	t.Run("picking the greedy action with lowest index on ties", func(t *testing.T) {
		table := NewTable()
		table.Set(key, 1, 0.5)
		table.Set(key, 3, 0.5)
		table.Set(key, 4, -2)

		require.Equal(t, 1, table.Greedy(key, 5))
		require.Equal(t, 0.5, table.Max(key, 5))
		require.Equal(t, 0, table.Greedy(key, 1), "Only the first action is legal")
	})

	t.Run("moving toward the target by alpha", func(t *testing.T) {
		table := NewTable()
		table.Set(key, 0, 0.2)

		table.update(key, 0, 1.0, 0.5)

		require.InDelta(t, 0.6, table.Get(key, 0), 1e-12)
		require.Equal(t, 1, table.Len())
	})

	t.Run("separating continuation states", func(t *testing.T) {
		b, err := game.ParseBoard(`
			. . . . . .
			. . . . . .
			. b . b . .
			. . r . r .
			. . . . . .
			. . . . . .`)
		require.NoError(t, err)
		plain := game.NewGameState(b, game.Black)
		chained, err := game.NewContinuationState(b, game.Black, game.Square{Row: 2, Col: 3})
		require.NoError(t, err)
		table := NewTable()
		table.Set(plain.Key(), 0, 1)

		require.Zero(t, table.Get(chained.Key(), 0))
	})
}

func TestAgent(t *testing.T) {
	state := game.InitialState()
	legal, err := state.LegalMoves()
	require.NoError(t, err)

	t.Run("playing the greedy move", func(t *testing.T) {
		table := NewTable()
		table.Set(state.Key(), 2, 1)

		move, _, err := NewAgent(table, 0, 1).FindMove(state, nil)

		require.NoError(t, err)
		require.Equal(t, legal[2], move)
	})

	t.Run("exploring with epsilon", func(t *testing.T) {
		table := NewTable()
		table.Set(state.Key(), 2, 1)
		a := NewAgent(table, 1, 1)

		seen := map[game.Move]bool{}
		for i := 0; i < 100; i++ {
			move, _, err := a.FindMove(state, nil)
			require.NoError(t, err)
			seen[move] = true
		}

		require.Greater(t, len(seen), 1)
	})
}

func TestNewOpponent(t *testing.T) {
	for _, name := range []string{OpponentRandom, OpponentHeuristic} {
		a, err := NewOpponent(name, 1)
		require.NoError(t, err)
		require.NotNil(t, a)
	}

	_, err := NewOpponent("minimax", 1)
	require.ErrorIs(t, err, ErrUnknownOpponent)
}

func TestTrain(t *testing.T) {
	config := DefaultConfig()
	config.Episodes = 20
	config.EvalInterval = 10
	config.EvalGames = 2
	config.Opponent = OpponentRandom
	config.Seed = 1

	t.Run("recording per-episode statistics", func(t *testing.T) {
		result, err := Train(config)

		require.NoError(t, err)
		require.Len(t, result.Rewards, 20)
		require.Len(t, result.EpisodeLengths, 20)
		require.Equal(t, []int{10, 20}, result.EvalSteps)
		require.Len(t, result.WinRateVsRandom, 2)
		require.Len(t, result.WinRateVsHeuristic, 2)
		require.Positive(t, result.Table.Len())
		for _, r := range result.Rewards {
			require.Contains(t, []float64{-1, 0, 1}, r)
		}
		for _, wr := range result.WinRateVsRandom {
			require.GreaterOrEqual(t, wr, 0.0)
			require.LessOrEqual(t, wr, 1.0)
		}
		require.InDelta(t, math.Pow(config.EpsilonDecay, 20), result.FinalEpsilon, 1e-9)
	})

	t.Run("repeating a run with the same seed", func(t *testing.T) {
		config := config
		config.EvalInterval = 0

		first, err := Train(config)
		require.NoError(t, err)
		second, err := Train(config)
		require.NoError(t, err)

		require.Equal(t, first.Rewards, second.Rewards)
		require.Equal(t, first.EpisodeLengths, second.EpisodeLengths)
		require.Equal(t, first.Table.Len(), second.Table.Len())
	})

	t.Run("rejecting an unknown opponent", func(t *testing.T) {
		config := config
		config.Opponent = "nobody"

		_, err := Train(config)

		require.ErrorIs(t, err, ErrUnknownOpponent)
	})
}
