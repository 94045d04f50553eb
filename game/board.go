package game

import "fmt"

// Square addresses one cell by row and column. Only dark cells, where
// row+col is odd, are playable.
type Square struct {
	Row int
	Col int
}

// NoSquare marks an absent square (no capture, no continuation).
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare returns the playable square at (row, col).
func NewSquare(row, col int) (Square, error) {
	sq := Square{Row: row, Col: col}
	if !sq.Playable() {
		return NoSquare, fmt.Errorf("%w: (%d, %d)", ErrInvalidSquare, row, col)
	}
	return sq, nil
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (sq Square) Playable() bool {
	return onBoard(sq.Row, sq.Col) && (sq.Row+sq.Col)%2 == 1
}

// index is the square's position among the playable squares in row-major order.
func (sq Square) index() int {
	return sq.Row*(Size/2) + sq.Col/2
}

func squareAt(index int) Square {
	row := index / (Size / 2)
	return Square{Row: row, Col: 2*(index%(Size/2)) + (row+1)%2}
}

// Squares returns the playable squares in row-major order.
func Squares() []Square {
	out := make([]Square, NumSquares)
	copy(out, playable[:])
	return out
}

var playable = func() [NumSquares]Square {
	var squares [NumSquares]Square
	for i := range squares {
		squares[i] = squareAt(i)
	}
	return squares
}()

type direction struct {
	dRow int
	dCol int
}

var (
	northWest = direction{dRow: -1, dCol: -1}
	northEast = direction{dRow: -1, dCol: 1}
	southWest = direction{dRow: 1, dCol: -1}
	southEast = direction{dRow: 1, dCol: 1}

	kingDirections     = []direction{northWest, northEast, southWest, southEast}
	blackManDirections = []direction{southWest, southEast} // Toward increasing rows
	redManDirections   = []direction{northWest, northEast} // Toward decreasing rows
)

// step walks n cells along d. The result may be off the board.
func (sq Square) step(d direction, n int) Square {
	return Square{Row: sq.Row + n*d.dRow, Col: sq.Col + n*d.dCol}
}

type Piece int8

const (
	Empty Piece = iota
	ManBlack
	KingBlack
	ManRed
	KingRed
)

func (p Piece) Valid() bool {
	return p >= Empty && p <= KingRed
}

// Side returns the owner of the piece, false for Empty.
func (p Piece) Side() (Side, bool) {
	switch p {
	case ManBlack, KingBlack:
		return Black, true
	case ManRed, KingRed:
		return Red, true
	default:
		return Black, false
	}
}

func (p Piece) Belongs(side Side) bool {
	owner, ok := p.Side()
	return ok && owner == side
}

func (p Piece) IsKing() bool {
	return p == KingBlack || p == KingRed
}

// directions lists where the piece may step or jump.
func (p Piece) directions() []direction {
	switch p {
	case ManBlack:
		return blackManDirections
	case ManRed:
		return redManDirections
	case KingBlack, KingRed:
		return kingDirections
	default:
		return nil
	}
}

// promotedOn returns the piece as it stands after landing on sq.
func (p Piece) promotedOn(sq Square) Piece {
	switch {
	case p == ManBlack && sq.Row == Size-1:
		return KingBlack
	case p == ManRed && sq.Row == 0:
		return KingRed
	default:
		return p
	}
}

// Board is a value type: copies never share cells.
type Board struct {
	cells [Size][Size]Piece
}

// NewBoard returns the standard starting layout: Black men on the first two
// rows, Red men on the last two.
func NewBoard() Board {
	var b Board
	for _, sq := range playable {
		switch {
		case sq.Row < 2:
			b.set(sq, ManBlack)
		case sq.Row >= Size-2:
			b.set(sq, ManRed)
		}
	}
	return b
}

func (b Board) PieceAt(sq Square) (Piece, error) {
	if !sq.Playable() {
		return Empty, fmt.Errorf("%w: (%d, %d)", ErrInvalidSquare, sq.Row, sq.Col)
	}
	return b.at(sq), nil
}

// WithPiece returns a copy of the board with sq holding p.
func (b Board) WithPiece(sq Square, p Piece) (Board, error) {
	if !sq.Playable() {
		return b, fmt.Errorf("%w: (%d, %d)", ErrInvalidSquare, sq.Row, sq.Col)
	}
	if !p.Valid() {
		return b, fmt.Errorf("%w: %d", ErrInvalidPiece, p)
	}
	b.set(sq, p)
	return b, nil
}

// Count returns the number of pieces, men and kings, owned by side.
func (b Board) Count(side Side) int {
	n := 0
	for _, sq := range playable {
		if b.at(sq).Belongs(side) {
			n++
		}
	}
	return n
}

func (b Board) at(sq Square) Piece {
	return b.cells[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}
