package game

import "errors"

const (
	Size       = 6               // Rows and columns of the board
	NumSquares = Size * Size / 2 // Playable (dark) squares
)

var (
	// ErrInvalidSquare reports a light square or an off-board coordinate.
	ErrInvalidSquare = errors.New("invalid square")
	// ErrInvalidPiece reports a value outside the Piece enumeration.
	ErrInvalidPiece = errors.New("invalid piece")
	// ErrIllegalAction reports an action outside the current legal set, or a stale multi-jump step.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvariantViolation reports an inconsistent state, e.g. a continuation with no follow-up capture.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrBadNotation reports text that cannot be parsed as a square, move or board.
	ErrBadNotation = errors.New("bad notation")
)

type Side int8

const (
	Black Side = iota // Moves first, advances toward increasing rows
	Red               // Advances toward decreasing rows
)

func (s Side) Opponent() Side {
	if s == Black {
		return Red
	}
	return Black
}

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
		return "Unknown"
	}
}

type StateHash uint64

// Evaluate scores a state between -1 and 1 indicating how favorable the
// position is for the side to move.
type Evaluate func(GameState) float64
