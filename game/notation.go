package game

import (
	"fmt"
	"strings"
)

var pieceSymbols = [...]byte{Empty: '.', ManBlack: 'b', KingBlack: 'B', ManRed: 'r', KingRed: 'R'}

func (p Piece) String() string {
	if !p.Valid() {
		return "?"
	}
	return string(pieceSymbols[p])
}

func pieceFromSymbol(ch byte) (Piece, bool) {
	for p, sym := range pieceSymbols {
		if sym == ch {
			return Piece(p), true
		}
	}
	return Empty, false
}

// String names the square by file a-f (column) and rank 1-6, rank 6 being row 0.
func (sq Square) String() string {
	if !onBoard(sq.Row, sq.Col) {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Col, Size-sq.Row)
}

func ParseSquare(token string) (Square, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadNotation, token)
	}
	file, rank := token[0], token[1]
	if file < 'a' || file >= 'a'+Size || rank < '1' || rank >= '1'+Size {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadNotation, token)
	}
	return NewSquare(Size-int(rank-'0'), int(file-'a'))
}

// ParseMove reads "from to" (e.g. "b5 a4") and returns the matching move from legal.
func ParseMove(text string, legal []Move) (Move, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("%w: move %q", ErrBadNotation, text)
	}
	from, err := ParseSquare(parts[0])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(parts[1])
	if err != nil {
		return Move{}, err
	}
	for _, m := range legal {
		if m.From == from && m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s %s", ErrIllegalAction, from, to)
}

// String renders the board with rank labels on the left and files underneath.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", Size-row)
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row][col].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f\n")
	return sb.String()
}

// ParseBoard reads six rows of six symbols (. b B r R), row 0 first. Spaces
// inside a row and blank lines are ignored.
func ParseBoard(text string) (Board, error) {
	var b Board
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		if row >= Size || len(line) != Size {
			return Board{}, fmt.Errorf("%w: board row %d %q", ErrBadNotation, row, line)
		}
		for col := 0; col < Size; col++ {
			p, ok := pieceFromSymbol(line[col])
			if !ok {
				return Board{}, fmt.Errorf("%w: symbol %q", ErrBadNotation, line[col])
			}
			if p == Empty {
				continue
			}
			sq, err := NewSquare(row, col)
			if err != nil {
				return Board{}, err
			}
			b.set(sq, p)
		}
		row++
	}
	if row != Size {
		return Board{}, fmt.Errorf("%w: %d board rows", ErrBadNotation, row)
	}
	return b, nil
}
