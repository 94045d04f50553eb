package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// GameState is an immutable snapshot: board, side to move and the square of a
// piece that must continue capturing. Every transition returns a new value, so
// callers may keep old states without copying.
type GameState struct {
	board    Board
	toMove   Side
	chain    Square // Meaningful only while chaining
	chaining bool
}

// InitialState returns the standard starting position with Black to move.
func InitialState() GameState {
	return NewGameState(NewBoard(), Black)
}

// NewGameState returns a state at the start of toMove's turn.
func NewGameState(board Board, toMove Side) GameState {
	return GameState{board: board, toMove: toMove, chain: NoSquare}
}

// NewContinuationState returns a state in the middle of a multi-jump by the
// piece on at. The piece must belong to toMove and have a capture available.
func NewContinuationState(board Board, toMove Side, at Square) (GameState, error) {
	if !at.Playable() {
		return GameState{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidSquare, at.Row, at.Col)
	}
	s := GameState{board: board, toMove: toMove, chain: at, chaining: true}
	if _, err := s.LegalMoves(); err != nil {
		return GameState{}, err
	}
	return s, nil
}

func (s GameState) Board() Board {
	return s.board
}

func (s GameState) SideToMove() Side {
	return s.toMove
}

// Continuation returns the square of the piece that must keep capturing, if any.
func (s GameState) Continuation() (Square, bool) {
	if !s.chaining {
		return NoSquare, false
	}
	return s.chain, true
}

// Player returns the name of the side to move.
func (s GameState) Player() string {
	return s.toMove.String()
}

// Outcome reports whether the side to move has lost by having no legal action.
func (s GameState) Outcome() Outcome {
	if s.chaining {
		return Ongoing
	}
	if len(s.board.legalMoves(s.toMove)) > 0 {
		return Ongoing
	}
	return wonBy(s.toMove.Opponent())
}

// Winner returns the winning side's name, "" while the game is ongoing.
func (s GameState) Winner() string {
	if side, ok := s.Outcome().Winner(); ok {
		return side.String()
	}
	return ""
}

// Apply plays action on s. See GameState.Apply.
func Apply(s GameState, action Action) (GameState, Outcome, error) {
	return s.Apply(action)
}

// Apply plays every step of action, re-deriving legality before each one.
// Steps after the first must continue the same piece's capture chain. On
// error the returned state is s itself.
func (s GameState) Apply(action Action) (GameState, Outcome, error) {
	if len(action) == 0 {
		return s, Ongoing, fmt.Errorf("%w: empty action", ErrIllegalAction)
	}

	next := s
	outcome := Ongoing
	for i, m := range action {
		if i > 0 && (!next.chaining || next.chain != m.From) {
			return s, Ongoing, fmt.Errorf("%w: step %d (%s) does not continue a capture chain", ErrIllegalAction, i+1, m)
		}
		var err error
		next, outcome, err = next.step(m)
		if err != nil {
			return s, Ongoing, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return next, outcome, nil
}

// Play applies a single step.
func (s GameState) Play(m Move) (GameState, Outcome, error) {
	return s.Apply(Action{m})
}

func (s GameState) step(m Move) (GameState, Outcome, error) {
	legal, err := s.LegalMoves()
	if err != nil {
		return s, Ongoing, err
	}
	if !slices.Contains(legal, m) {
		return s, Ongoing, fmt.Errorf("%w: %s for %s", ErrIllegalAction, m, s.toMove)
	}

	board := s.board
	piece := board.at(m.From)
	board.set(m.From, Empty)
	if m.IsCapture() {
		board.set(m.Captured, Empty)
	}
	// Promotion applies mid-chain too, so further jumps use king directions
	board.set(m.To, piece.promotedOn(m.To))

	next := GameState{board: board, toMove: s.toMove, chain: NoSquare}
	if m.IsCapture() {
		if _, captures := board.pieceMoves(m.To); len(captures) > 0 {
			next.chain = m.To
			next.chaining = true
			return next, Ongoing, nil
		}
	}

	next.toMove = s.toMove.Opponent()
	return next, next.Outcome(), nil
}

type Outcome int8

const (
	Ongoing Outcome = iota
	BlackWins
	RedWins
)

func wonBy(side Side) Outcome {
	if side == Black {
		return BlackWins
	}
	return RedWins
}

func (o Outcome) Terminal() bool {
	return o != Ongoing
}

func (o Outcome) Winner() (Side, bool) {
	switch o {
	case BlackWins:
		return Black, true
	case RedWins:
		return Red, true
	default:
		return Black, false
	}
}

// Reward labels the outcome from side's point of view: +1 win, -1 loss, 0 otherwise.
func (o Outcome) Reward(side Side) float64 {
	winner, ok := o.Winner()
	switch {
	case !ok:
		return 0
	case winner == side:
		return 1
	default:
		return -1
	}
}

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "Black wins"
	case RedWins:
		return "Red wins"
	default:
		return "ongoing"
	}
}
