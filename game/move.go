package game

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Move is a single atomic step. Captured is NoSquare for a simple move.
type Move struct {
	From     Square
	To       Square
	Captured Square
}

func (m Move) IsCapture() bool {
	return m.Captured.Playable()
}

func (m Move) String() string {
	if m.IsCapture() {
		return m.From.String() + "x" + m.To.String()
	}
	return m.From.String() + " " + m.To.String()
}

// Action is one simple move, or an ordered sequence of capture steps taken by
// the same piece within one turn.
type Action []Move

func (a Action) IsCapture() bool {
	return len(a) > 0 && a[0].IsCapture()
}

// Captures counts the pieces the action removes.
func (a Action) Captures() int {
	n := 0
	for _, m := range a {
		if m.IsCapture() {
			n++
		}
	}
	return n
}

func (a Action) Equal(other Action) bool {
	return slices.Equal(a, other)
}

func (a Action) String() string {
	if len(a) == 0 {
		return "-"
	}
	if !a.IsCapture() {
		return a[0].String()
	}
	parts := make([]string, 0, len(a)+1)
	parts = append(parts, a[0].From.String())
	for _, m := range a {
		parts = append(parts, m.To.String())
	}
	return strings.Join(parts, "x")
}
