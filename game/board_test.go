package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquare(t *testing.T) {
	t.Run("accepting dark squares", func(t *testing.T) {
		sq, err := NewSquare(0, 1)
		require.NoError(t, err)
		require.Equal(t, Square{Row: 0, Col: 1}, sq)
	})

	t.Run("rejecting light and off-board squares", func(t *testing.T) {
		for _, rc := range [][2]int{{0, 0}, {2, 2}, {-1, 0}, {6, 1}, {1, 6}} {
			_, err := NewSquare(rc[0], rc[1])
			require.ErrorIs(t, err, ErrInvalidSquare, "(%d, %d) should be invalid", rc[0], rc[1])
		}
	})

	t.Run("indexing playable squares in row-major order", func(t *testing.T) {
		squares := Squares()
		require.Len(t, squares, NumSquares)
		for i, sq := range squares {
			require.True(t, sq.Playable())
			require.Equal(t, i, sq.index())
		}
		require.Equal(t, Square{Row: 0, Col: 1}, squares[0])
		require.Equal(t, Square{Row: 5, Col: 4}, squares[NumSquares-1])
	})
}

func TestBoard(t *testing.T) {
	t.Run("laying out the starting position", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, 6, b.Count(Black))
		require.Equal(t, 6, b.Count(Red))

		p, err := b.PieceAt(Square{Row: 1, Col: 0})
		require.NoError(t, err)
		require.Equal(t, ManBlack, p)

		p, err = b.PieceAt(Square{Row: 4, Col: 1})
		require.NoError(t, err)
		require.Equal(t, ManRed, p)

		p, err = b.PieceAt(Square{Row: 2, Col: 1})
		require.NoError(t, err)
		require.Equal(t, Empty, p)
	})

	t.Run("failing on light squares", func(t *testing.T) {
		_, err := NewBoard().PieceAt(Square{Row: 0, Col: 0})
		require.ErrorIs(t, err, ErrInvalidSquare)
	})

	t.Run("returning a new board without touching the receiver", func(t *testing.T) {
		b := NewBoard()
		sq := Square{Row: 2, Col: 3}

		changed, err := b.WithPiece(sq, KingRed)
		require.NoError(t, err)

		got, _ := changed.PieceAt(sq)
		require.Equal(t, KingRed, got)
		orig, _ := b.PieceAt(sq)
		require.Equal(t, Empty, orig, "Receiver should not change")
		require.Equal(t, 7, changed.Count(Red))
	})

	t.Run("rejecting invalid pieces", func(t *testing.T) {
		_, err := NewBoard().WithPiece(Square{Row: 2, Col: 3}, Piece(9))
		require.ErrorIs(t, err, ErrInvalidPiece)
	})
}

func TestPiece(t *testing.T) {
	t.Run("reporting owners", func(t *testing.T) {
		side, ok := KingRed.Side()
		require.True(t, ok)
		require.Equal(t, Red, side)

		_, ok = Empty.Side()
		require.False(t, ok)
		require.False(t, Empty.Belongs(Black))
		require.True(t, ManBlack.Belongs(Black))
	})

	t.Run("promoting men on the far row only", func(t *testing.T) {
		require.Equal(t, KingBlack, ManBlack.promotedOn(Square{Row: 5, Col: 0}))
		require.Equal(t, ManBlack, ManBlack.promotedOn(Square{Row: 4, Col: 1}))
		require.Equal(t, KingRed, ManRed.promotedOn(Square{Row: 0, Col: 1}))
		require.Equal(t, ManRed, ManRed.promotedOn(Square{Row: 5, Col: 0}))
		require.Equal(t, KingRed, KingRed.promotedOn(Square{Row: 5, Col: 0}))
	})
}
