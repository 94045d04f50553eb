package game

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/slices"
)

const (
	EncodingLen = NumSquares + 1 // Playable squares then the side to move
	KeyLen      = EncodingLen + 1
	noChain     = 0xFF
)

// Encoding holds one Piece value per playable square in row-major order,
// followed by 0 when Black is to move and 1 when Red is.
type Encoding [EncodingLen]uint8

// StateKey is an Encoding extended with the continuation square index
// (0xFF when no chain is in progress). Two states share a key only when they
// share a legal action set.
type StateKey [KeyLen]uint8

func (s GameState) Encode() Encoding {
	var e Encoding
	for i, sq := range playable {
		e[i] = uint8(s.board.at(sq))
	}
	e[NumSquares] = uint8(s.toMove)
	return e
}

func (s GameState) Key() StateKey {
	var k StateKey
	e := s.Encode()
	copy(k[:], e[:])
	k[EncodingLen] = noChain
	if s.chaining {
		k[EncodingLen] = uint8(s.chain.index())
	}
	return k
}

func (s GameState) Hash() StateHash {
	hasher := fnv.New64a()
	k := s.Key()
	hasher.Write(k[:])
	return StateHash(hasher.Sum64())
}

// IndexOf returns the position of action within actions, or -1. Indices are
// positional and only meaningful for the action set they came from.
func IndexOf(action Action, actions []Action) int {
	return slices.IndexFunc(actions, action.Equal)
}

// ActionAt is the inverse of IndexOf.
func ActionAt(actions []Action, index int) (Action, error) {
	if index < 0 || index >= len(actions) {
		return nil, fmt.Errorf("%w: index %d outside %d legal actions", ErrIllegalAction, index, len(actions))
	}
	return actions[index], nil
}

// ActionMask marks the first len(actions) slots of a size-slot action space.
// Actions beyond size cannot be addressed.
func ActionMask(actions []Action, size int) []bool {
	mask := make([]bool, size)
	for i := 0; i < len(actions) && i < size; i++ {
		mask[i] = true
	}
	return mask
}
