package searcher

import (
	"sync"
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func mustState(t *testing.T, text string, toMove game.Side) game.GameState {
	t.Helper()
	b, err := game.ParseBoard(text)
	require.NoError(t, err)
	return game.NewGameState(b, toMove)
}

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting the child with the highest score", func(t *testing.T) {
		state := game.InitialState()
		moves := legalMoves(state)
		maxChild := &decision{player: game.Black, rewards: 1, visits: 1}
		otherChild := &decision{player: game.Black, rewards: 0, visits: 1}
		node := &decision{
			player:     game.Red,
			unexplored: []game.Move{},
			explored:   []game.Move{moves[0], moves[1]},
			children:   []*decision{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Same(t, maxChild, gotChild)
		require.Equal(t, 1+Loss, gotChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.visits, "Child should apply a temporary loss")
		require.Equal(t, play(state, moves[1]).Hash(), gotState.Hash(), "State should follow the selected move")
		require.True(t, gotSelected)
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("selecting below a root whose playouts are all in flight", func(t *testing.T) {
		state := game.InitialState()
		node := newRoot(state)
		moves := len(node.unexplored)
		for i := 0; i < moves; i++ {
			node.SelectOrExpand(state)
		}
		require.Zero(t, node.visits, "No playout has been backed up yet")

		var gotChild *decision
		require.NotPanics(t, func() { gotChild, _, _ = node.SelectOrExpand(state) })
		require.Contains(t, node.children, gotChild)
		require.Equal(t, 2.0, gotChild.visits, "Child should carry both virtual losses")
	})

	t.Run("expanding the next unexplored move", func(t *testing.T) {
		state := game.InitialState()
		moves := legalMoves(state)
		node := newRoot(state)

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.False(t, gotSelected)
		require.Same(t, node, gotChild.parent)
		require.Equal(t, game.Black, gotChild.player, "Child belongs to the side that moved")
		require.Equal(t, Loss, gotChild.rewards)
		require.Equal(t, 1.0, gotChild.visits)
		require.Equal(t, []game.Move{moves[0]}, node.explored)
		require.Len(t, node.unexplored, len(moves)-1)
		require.Equal(t, gotState.Hash(), gotChild.hash)
		require.Equal(t, game.Red, gotState.SideToMove())
	})

	t.Run("keeping the mover across a multi-jump", func(t *testing.T) {
		state := mustState(t, `
			. . . . . .
			b . . . . .
			. r . . . .
			. . . . . .
			. r . . . .
			. . . . . .`, game.Black)
		node := newRoot(state)

		child, next, _ := node.SelectOrExpand(state)

		_, chaining := next.Continuation()
		require.True(t, chaining)
		require.Equal(t, game.Black, next.SideToMove())
		require.Equal(t, game.Black, child.player)

		grandChild, last, _ := child.SelectOrExpand(next)

		require.Equal(t, game.Black, grandChild.player, "Black made both jumps")
		require.True(t, last.Outcome().Terminal())
	})

	t.Run("returning terminal nodes unchanged", func(t *testing.T) {
		state := mustState(t, `
			. . . . . .
			. . . . . .
			. . . . . .
			. . . . . .
			. r . . . .
			. . . . . .`, game.Black)
		node := newRoot(state)

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Same(t, node, gotChild)
		require.Equal(t, state, gotState)
		require.False(t, gotSelected)
		require.Equal(t, 0.0, node.visits)
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("reversing virtual loss and crediting the winner", func(t *testing.T) {
		root := &decision{player: game.Red}
		child := &decision{parent: root, player: game.Black, rewards: Loss, visits: 1}

		parent := child.Backup(game.Black, Win)

		require.Same(t, root, parent)
		require.Equal(t, Win, child.rewards)
		require.Equal(t, 1.0, child.visits)

		parent = root.Backup(game.Black, Win)

		require.Nil(t, parent)
		require.Equal(t, -Win, root.rewards, "Root belongs to the losing side")
		require.Equal(t, 1.0, root.visits)
	})

	t.Run("negating evaluations for the other side", func(t *testing.T) {
		root := &decision{player: game.Black}
		child := &decision{parent: root, player: game.Red, rewards: Loss, visits: 1}

		child.Backup(game.Black, 0.25)

		require.Equal(t, -0.25, child.rewards)
	})
}

func TestDecisionConcurrency(t *testing.T) {
	t.Run("expanding every move once under contention", func(t *testing.T) {
		state := game.InitialState()
		moves := legalMoves(state)
		root := newRoot(state)

		var wg sync.WaitGroup
		for range moves {
			wg.Add(1)
			go func() {
				defer wg.Done()
				root.SelectOrExpand(state)
			}()
		}
		wg.Wait()

		require.Empty(t, root.unexplored)
		require.ElementsMatch(t, moves, root.explored)
		require.Len(t, root.children, len(moves))
	})

	t.Run("balancing visits after concurrent backups", func(t *testing.T) {
		state := game.InitialState()
		root := newRoot(state)
		child, _, _ := root.SelectOrExpand(state)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				child.applyLoss()
				backup(child, game.Black, Win)
			}()
		}
		wg.Wait()
		backup(child, game.Black, Win) // Matches the loss applied on expansion

		require.Equal(t, 51.0, child.visits)
		require.Equal(t, 51.0*Win, child.rewards)
		require.Equal(t, 51.0, root.visits)
	})
}

func TestPolicy(t *testing.T) {
	state := game.InitialState()
	moves := legalMoves(state)
	node := &decision{
		explored: moves[:2],
		children: []*decision{{visits: 3}, {visits: 7}},
	}

	policy := node.Policy()

	require.Equal(t, map[game.Move]float64{moves[0]: 3, moves[1]: 7}, policy)
}
