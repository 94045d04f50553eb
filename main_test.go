package main

import (
	"bytes"
	"strings"
	"testing"

	"checkers/agent"
	"checkers/game"
	"checkers/gamemaster"

	"github.com/stretchr/testify/require"
)

func TestPlaySession(t *testing.T) {
	t.Run("quitting on request", func(t *testing.T) {
		var out bytes.Buffer

		err := playSession(gamemaster.NewLocalEngine(), agent.NewRandomAgent(1), game.Black, strings.NewReader("q\n"), &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Black to move > ")
		require.Contains(t, out.String(), "Game ended.")
	})

	t.Run("reprompting after bad input", func(t *testing.T) {
		var out bytes.Buffer

		err := playSession(gamemaster.NewLocalEngine(), agent.NewRandomAgent(1), game.Black, strings.NewReader("zz\na5 c3\nq\n"), &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Invalid input.")
		require.Contains(t, out.String(), "Illegal move.")
	})

	t.Run("answering a human move", func(t *testing.T) {
		var out bytes.Buffer

		err := playSession(gamemaster.NewLocalEngine(), agent.NewRandomAgent(1), game.Black, strings.NewReader("a5 b4\nq\n"), &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "AI plays: ")
	})

	t.Run("announcing the winner", func(t *testing.T) {
		b, err := game.ParseBoard(`
			. . . . . .
			. . . . . .
			. b . . . .
			. . r . . .
			. . . . . .
			. . . . . .`)
		require.NoError(t, err)
		var out bytes.Buffer
		s := gamemaster.NewLocalEngineFrom(game.NewGameState(b, game.Black))

		err = playSession(s, agent.NewRandomAgent(1), game.Black, strings.NewReader("b4 d2\n"), &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Black wins!")
	})

	t.Run("stopping when input ends", func(t *testing.T) {
		var out bytes.Buffer

		err := playSession(gamemaster.NewLocalEngine(), agent.NewHeuristicAgent(game.DefaultWeights()), game.Red, strings.NewReader(""), &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "AI plays: ")
		require.Contains(t, out.String(), "Input ended.")
	})
}
