package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestApply(t *testing.T) {
	t.Run("moving a man and passing the turn", func(t *testing.T) {
		s := InitialState()
		m := simple(sq(1, 2), sq(2, 3))

		next, outcome, err := s.Apply(Action{m})

		require.NoError(t, err)
		require.Equal(t, Ongoing, outcome)
		require.Equal(t, Red, next.SideToMove())
		_, chaining := next.Continuation()
		require.False(t, chaining)
		p, _ := next.Board().PieceAt(sq(2, 3))
		require.Equal(t, ManBlack, p)
		p, _ = next.Board().PieceAt(sq(1, 2))
		require.Equal(t, Empty, p)
		require.Equal(t, InitialState(), s, "Input state should not change")
	})

	t.Run("rejecting moves outside the legal set", func(t *testing.T) {
		s := InitialState()

		next, outcome, err := s.Apply(Action{simple(sq(0, 1), sq(1, 0))})

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Equal(t, s, next, "Failed apply should return the prior state")
		require.Equal(t, Ongoing, outcome)

		_, _, err = s.Apply(Action{})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("rejecting simple moves while a capture is available", func(t *testing.T) {
		b := mustBoard(t, `
			. . . . . b
			. . . . . .
			. b . . . .
			. . r . . .
			. . . . . .
			. . . . . .`)
		_, _, err := NewGameState(b, Black).Apply(Action{simple(sq(0, 5), sq(1, 4))})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("continuing a multi-jump with the same side and piece", func(t *testing.T) {
		b := mustBoard(t, `
			. b . . . .
			. . r . . .
			. . . . . .
			. . . . r .
			. . . . . .
			. . . . . .`)
		s := NewGameState(b, Black)

		next, outcome, err := s.Apply(Action{jump(sq(0, 1), sq(1, 2), sq(2, 3))})

		require.NoError(t, err)
		require.Equal(t, Ongoing, outcome)
		require.Equal(t, Black, next.SideToMove(), "Turn should not pass mid-chain")
		at, chaining := next.Continuation()
		require.True(t, chaining)
		require.Equal(t, sq(2, 3), at)
		require.Equal(t, 1, next.Board().Count(Red))

		actions, err := next.LegalActions()
		require.NoError(t, err)
		require.Equal(t, []Action{{jump(sq(2, 3), sq(3, 4), sq(4, 5))}}, actions)

		final, outcome, err := next.Apply(actions[0])
		require.NoError(t, err)
		require.Equal(t, BlackWins, outcome)
		require.Equal(t, Red, final.SideToMove())
		require.Equal(t, 0, final.Board().Count(Red))
	})

	t.Run("applying a pre-composed multi-jump in one call", func(t *testing.T) {
		b := mustBoard(t, `
			. b . . . .
			. . r . . .
			. . . . . .
			. . . . r .
			. . . . . .
			. . . . . .`)
		s := NewGameState(b, Black)
		action := Action{jump(sq(0, 1), sq(1, 2), sq(2, 3)), jump(sq(2, 3), sq(3, 4), sq(4, 5))}

		next, outcome, err := s.Apply(action)

		require.NoError(t, err)
		require.Equal(t, BlackWins, outcome)
		require.Equal(t, 2, action.Captures())
		require.Equal(t, b.Count(Red)-2, next.Board().Count(Red))
	})

	t.Run("rejecting stale multi-jump sequences", func(t *testing.T) {
		b := mustBoard(t, `
			. b . . . .
			. . r . . .
			. . . . . .
			. . . . r .
			. . . . . .
			. . . . . .`)
		s := NewGameState(b, Black)

		_, _, err := s.Apply(Action{jump(sq(0, 1), sq(1, 2), sq(2, 3)), jump(sq(2, 3), sq(3, 2), sq(4, 1))})
		require.ErrorIs(t, err, ErrIllegalAction, "Second jump has nothing to capture")

		_, _, err = s.Apply(Action{jump(sq(0, 1), sq(1, 2), sq(2, 3)), jump(sq(0, 1), sq(1, 2), sq(2, 3))})
		require.ErrorIs(t, err, ErrIllegalAction, "Second step must start where the chain stands")
	})

	t.Run("rejecting steps after the turn has passed", func(t *testing.T) {
		s := InitialState()
		_, _, err := s.Apply(Action{simple(sq(1, 2), sq(2, 3)), simple(sq(4, 1), sq(3, 2))})
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("promoting on the far row after a simple move", func(t *testing.T) {
		b := mustBoard(t, `
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. b . . . .
			. . . . r .`)
		next, _, err := NewGameState(b, Black).Apply(Action{simple(sq(4, 1), sq(5, 0))})
		require.NoError(t, err)
		p, _ := next.Board().PieceAt(sq(5, 0))
		require.Equal(t, KingBlack, p)
	})

	t.Run("promoting mid-chain and continuing with king captures", func(t *testing.T) {
		b := mustBoard(t, `
			. . . . . .
			. . . . . .
			. . . . . .
			b . . . . .
			. r . r . r
			. . . . . .`)
		s := NewGameState(b, Black)

		next, outcome, err := s.Apply(Action{jump(sq(3, 0), sq(4, 1), sq(5, 2))})

		require.NoError(t, err)
		require.Equal(t, Ongoing, outcome)
		p, _ := next.Board().PieceAt(sq(5, 2))
		require.Equal(t, KingBlack, p, "Man should promote immediately")
		at, chaining := next.Continuation()
		require.True(t, chaining, "New king should keep capturing backwards")
		require.Equal(t, sq(5, 2), at)

		final, outcome, err := next.Apply(Action{jump(sq(5, 2), sq(4, 3), sq(3, 4))})
		require.NoError(t, err)
		require.Equal(t, Ongoing, outcome)
		require.Equal(t, Red, final.SideToMove())
		require.Equal(t, 1, final.Board().Count(Red))
	})

	t.Run("declaring a win when the opponent is blocked", func(t *testing.T) {
		b := mustBoard(t, `
			. b . . . .
			r . . . . .
			. . . . . .
			. . . . b .
			. . . . . .
			. . . . . .`)
		next, outcome, err := NewGameState(b, Black).Apply(Action{simple(sq(3, 4), sq(4, 5))})

		require.NoError(t, err)
		require.Equal(t, BlackWins, outcome)
		require.Equal(t, "Black", next.Winner())
		require.Equal(t, 1, next.Board().Count(Red), "Red still has a piece but no move")

		actions, err := next.LegalActions()
		require.NoError(t, err)
		require.Empty(t, actions)
		require.Equal(t, BlackWins, next.Outcome())
	})

	t.Run("returning identical results for identical inputs", func(t *testing.T) {
		s := InitialState()
		a := Action{simple(sq(1, 0), sq(2, 1))}

		next1, outcome1, err1 := s.Apply(a)
		next2, outcome2, err2 := Apply(s, a)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, next1, next2)
		require.Equal(t, outcome1, outcome2)
	})
}

func TestNewStates(t *testing.T) {
	t.Run("starting a turn with no chain in progress", func(t *testing.T) {
		s := NewGameState(NewBoard(), Red)

		_, chaining := s.Continuation()
		require.False(t, chaining)
		require.Equal(t, Red, s.SideToMove())
	})

	t.Run("rejecting a continuation on a light square", func(t *testing.T) {
		_, err := NewContinuationState(NewBoard(), Black, Square{Row: 0, Col: 0})
		require.ErrorIs(t, err, ErrInvalidSquare)
	})

	t.Run("rejecting a continuation from the opponent's piece", func(t *testing.T) {
		_, err := NewContinuationState(NewBoard(), Black, Square{Row: 4, Col: 1})
		require.ErrorIs(t, err, ErrInvariantViolation)
	})
}

func TestOutcome(t *testing.T) {
	t.Run("labelling rewards per side", func(t *testing.T) {
		require.Equal(t, 1.0, BlackWins.Reward(Black))
		require.Equal(t, -1.0, BlackWins.Reward(Red))
		require.Equal(t, 0.0, Ongoing.Reward(Black))
		require.True(t, RedWins.Terminal())
		require.False(t, Ongoing.Terminal())
	})
}

// Random self-play checks the invariants that must hold in every reachable state.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for g := 0; g < 200; g++ {
		s := InitialState()
		for ply := 0; ply < 300; ply++ {
			actions, err := s.LegalActions()
			require.NoError(t, err)
			if len(actions) == 0 {
				require.True(t, s.Outcome().Terminal())
				break
			}

			hasCapture := false
			for _, a := range actions {
				hasCapture = hasCapture || a.IsCapture()
			}
			for _, a := range actions {
				require.Equal(t, hasCapture, a.IsCapture(), "Captures must exclude simple moves")
			}

			action := actions[rng.Intn(len(actions))]
			before := s.Board().Count(Black) + s.Board().Count(Red)

			next, outcome, err := s.Apply(action)
			require.NoError(t, err)

			after := next.Board().Count(Black) + next.Board().Count(Red)
			require.Equal(t, before-action.Captures(), after, "Pieces should only disappear by capture")

			if at, chaining := next.Continuation(); chaining {
				require.Equal(t, s.SideToMove(), next.SideToMove(), "Chains keep the side to move")
				require.Equal(t, action[len(action)-1].To, at)
				require.Equal(t, Ongoing, outcome)
			} else {
				require.Equal(t, s.SideToMove().Opponent(), next.SideToMove())
				require.Equal(t, next.Outcome(), outcome)
			}
			s = next
		}
	}
}
