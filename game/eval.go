package game

import "math"

// Weights balance the terms of the hand-crafted evaluation.
type Weights struct {
	Material    float64
	Mobility    float64
	Advancement float64
}

func DefaultWeights() Weights {
	return Weights{Material: 1.0, Mobility: 0.15, Advancement: 0.08}
}

// Score evaluates the board from side's perspective as a weighted sum of
// material, mobility and man advancement. It is unbounded.
func Score(b Board, side Side, w Weights) float64 {
	return w.Material*materialScore(b, side) +
		w.Mobility*mobilityScore(b, side) +
		w.Advancement*advancementScore(b, side)
}

// EvaluateMaterial compares material (men 1, kings 2) for the side to move,
// normalized to [-1, 1].
func EvaluateMaterial(s GameState) float64 {
	me, opp := material(s.board, s.toMove)
	return normalize(me, opp)
}

// EvaluateWeighted squashes Score for the side to move into (-1, 1).
func EvaluateWeighted(w Weights) Evaluate {
	return func(s GameState) float64 {
		return math.Tanh(Score(s.board, s.toMove, w) / 4)
	}
}

func pieceValue(p Piece) float64 {
	switch p {
	case ManBlack, ManRed:
		return 1
	case KingBlack, KingRed:
		return 2
	default:
		return 0
	}
}

func material(b Board, side Side) (me, opp float64) {
	for _, sq := range playable {
		p := b.at(sq)
		switch {
		case p.Belongs(side):
			me += pieceValue(p)
		case p != Empty:
			opp += pieceValue(p)
		}
	}
	return me, opp
}

func materialScore(b Board, side Side) float64 {
	me, opp := material(b, side)
	return me - opp
}

func mobilityScore(b Board, side Side) float64 {
	return float64(len(b.legalMoves(side)) - len(b.legalMoves(side.Opponent())))
}

// advancementScore rewards Black men for depth and Red men for height, as
// seen by side.
func advancementScore(b Board, side Side) float64 {
	score := 0.0
	for _, sq := range playable {
		switch b.at(sq) {
		case ManBlack:
			score += float64(sq.Row) / (Size - 1)
		case ManRed:
			score -= float64(Size-1-sq.Row) / (Size - 1)
		}
	}
	if side == Red {
		return -score
	}
	return score
}

// normalize converts two values into a single score between -1 and 1
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
