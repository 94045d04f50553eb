package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB(t *testing.T) {
	t.Run("scoring exploitation plus exploration", func(t *testing.T) {
		policy := newUCB(CSquared, 10)

		got := policy.evaluate(3, 5)

		want := 3.0/5 + math.Sqrt(CSquared*math.Log(10)/5)
		require.InDelta(t, want, got, 1e-12)
	})

	t.Run("preferring the less visited child at equal value", func(t *testing.T) {
		policy := newUCB(CSquared, 20)

		require.Greater(t, policy.evaluate(1, 2), policy.evaluate(5, 10))
	})

	t.Run("rejecting unvisited nodes", func(t *testing.T) {
		require.Panics(t, func() { newUCB(CSquared, 0) })
		require.Panics(t, func() { newUCB(CSquared, 1).evaluate(0, 0) })
	})
}
