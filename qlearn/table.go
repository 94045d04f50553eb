package qlearn

import (
	"checkers/game"
	"checkers/utils"
)

// Entry addresses one Q-value: a state and the position of an action within
// that state's legal set.
type Entry struct {
	Key    game.StateKey
	Action int
}

// Table is a sparse Q-table. Missing entries read as zero. It is not safe for
// concurrent writes.
type Table struct {
	values map[Entry]float64
}

func NewTable() *Table {
	return &Table{values: make(map[Entry]float64)}
}

func (t *Table) Get(key game.StateKey, action int) float64 {
	return t.values[Entry{Key: key, Action: action}]
}

func (t *Table) Set(key game.StateKey, action int, value float64) {
	t.values[Entry{Key: key, Action: action}] = value
}

func (t *Table) Len() int {
	return len(t.values)
}

// Range calls fn for every stored entry until fn returns false.
func (t *Table) Range(fn func(entry Entry, value float64) bool) {
	for entry, value := range t.values {
		if !fn(entry, value) {
			return
		}
	}
}

// Values returns the Q-values of the first n actions of key.
func (t *Table) Values(key game.StateKey, n int) []float64 {
	values := make([]float64, n)
	for a := range values {
		values[a] = t.Get(key, a)
	}
	return values
}

// Greedy returns the best of the first n actions, preferring the lowest
// index on ties. It returns 0 when n is 0.
func (t *Table) Greedy(key game.StateKey, n int) int {
	if n == 0 {
		return 0
	}
	return utils.ArgMax(t.Values(key, n))
}

// Max returns the best Q-value among the first n actions, or 0 when n is 0.
func (t *Table) Max(key game.StateKey, n int) float64 {
	if n == 0 {
		return 0
	}
	values := t.Values(key, n)
	return values[utils.ArgMax(values)]
}

// update moves the entry toward target by alpha.
func (t *Table) update(key game.StateKey, action int, target, alpha float64) {
	old := t.Get(key, action)
	t.Set(key, action, old+alpha*(target-old))
}
