package game

import "fmt"

// pieceMoves returns the simple moves and single-jump captures available to
// the piece standing on from, ignoring the forced-capture rule.
func (b Board) pieceMoves(from Square) (simple, captures []Move) {
	piece := b.at(from)
	side, ok := piece.Side()
	if !ok {
		return nil, nil
	}

	for _, d := range piece.directions() {
		next := from.step(d, 1)
		if !next.Playable() {
			continue
		}
		switch occupant := b.at(next); {
		case occupant == Empty:
			simple = append(simple, Move{From: from, To: next, Captured: NoSquare})
		case occupant.Belongs(side.Opponent()):
			landing := from.step(d, 2)
			if landing.Playable() && b.at(landing) == Empty {
				captures = append(captures, Move{From: from, To: landing, Captured: next})
			}
		}
	}
	return simple, captures
}

// legalMoves applies the forced-capture rule across every piece of side:
// if any capture exists, only captures are returned.
func (b Board) legalMoves(side Side) []Move {
	var simple, captures []Move
	for _, sq := range playable {
		if !b.at(sq).Belongs(side) {
			continue
		}
		s, c := b.pieceMoves(sq)
		simple = append(simple, s...)
		captures = append(captures, c...)
	}
	if len(captures) > 0 {
		return captures
	}
	return simple
}

// CaptureCount is the number of single-jump captures side could make on this
// board if it were to move, ignoring any continuation in progress.
func (b Board) CaptureCount(side Side) int {
	n := 0
	for _, sq := range playable {
		if b.at(sq).Belongs(side) {
			_, c := b.pieceMoves(sq)
			n += len(c)
		}
	}
	return n
}

// LegalMoves returns every legal single step for the side to move, in
// row-major order of the moving piece and NW, NE, SW, SE direction order.
// During a multi-jump only the continuing piece's captures are legal.
func (s GameState) LegalMoves() ([]Move, error) {
	if !s.chaining {
		return s.board.legalMoves(s.toMove), nil
	}

	if !s.board.at(s.chain).Belongs(s.toMove) {
		return nil, fmt.Errorf("%w: continuation at %s is not a %s piece", ErrInvariantViolation, s.chain, s.toMove)
	}
	_, captures := s.board.pieceMoves(s.chain)
	if len(captures) == 0 {
		return nil, fmt.Errorf("%w: continuation at %s has no follow-up capture", ErrInvariantViolation, s.chain)
	}
	return captures, nil
}

// LegalActions wraps LegalMoves as single-step actions. The order is stable
// for a given state and is the order used for action indices.
func (s GameState) LegalActions() ([]Action, error) {
	moves, err := s.LegalMoves()
	if err != nil {
		return nil, err
	}
	actions := make([]Action, len(moves))
	for i, m := range moves {
		actions[i] = Action{m}
	}
	return actions, nil
}

// TurnSequences expands the legal set into complete turns: simple moves stay
// single steps, captures are followed through every branch of the chain.
func (s GameState) TurnSequences() ([]Action, error) {
	moves, err := s.LegalMoves()
	if err != nil {
		return nil, err
	}

	var out []Action
	for _, m := range moves {
		next, _, err := s.step(m)
		if err != nil {
			return nil, err
		}
		if !next.chaining {
			out = append(out, Action{m})
			continue
		}
		tails, err := next.TurnSequences()
		if err != nil {
			return nil, err
		}
		for _, tail := range tails {
			out = append(out, append(Action{m}, tail...))
		}
	}
	return out, nil
}
