// Package env exposes the rule engine as an episodic environment with a
// fixed-width discrete action space, the way RL trainers expect it.
package env

import (
	"errors"
	"fmt"

	"checkers/game"
	"checkers/meta"
)

// ErrEpisodeDone reports a Step after the episode terminated or truncated.
var ErrEpisodeDone = errors.New("episode is over, call Reset")

type Observation struct {
	Encoding game.Encoding
	Key      game.StateKey // Encoding plus the multi-jump square
}

type Info struct {
	ActionMask    []bool
	Winner        string // "Black", "Red" or "draw" once the episode is over
	InvalidAction bool
}

type Option func(e *Env)

// WithMaxActions sets the action space width. Legal actions beyond it can
// never be chosen.
func WithMaxActions(n int) Option {
	return func(e *Env) {
		if n > 0 {
			e.maxActions = n
		}
	}
}

// WithMaxTurns sets the number of steps after which the episode is
// truncated as a draw.
func WithMaxTurns(n int) Option {
	return func(e *Env) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithStartState makes Reset begin from state instead of the standard
// opening.
func WithStartState(state game.GameState) Option {
	return func(e *Env) {
		e.start = state
	}
}

type Env struct {
	start      game.GameState
	maxActions int
	maxTurns   int
	state      game.GameState
	actions    []game.Action
	steps      int
	done       bool
}

func New(options ...Option) (*Env, error) {
	e := &Env{start: game.InitialState(), maxActions: meta.MAX_ACTIONS, maxTurns: meta.MAX_TURNS}
	for _, option := range options {
		option(e)
	}
	if _, _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a new episode from the start state.
func (e *Env) Reset() (Observation, Info, error) {
	e.state = e.start
	e.steps = 0
	e.done = false
	if err := e.refresh(); err != nil {
		e.done = true
		return e.observe(), Info{}, fmt.Errorf("reset: %w", err)
	}
	return e.observe(), Info{ActionMask: e.ActionMask()}, nil
}

// Step plays the legal action at index. The reward is +1 for the step that
// wins, -1 for an index outside the legal set (which forfeits the game) and
// 0 otherwise, including multi-jump steps that keep the same side to move.
func (e *Env) Step(index int) (Observation, float64, bool, bool, Info, error) {
	if e.done {
		return e.observe(), 0, false, false, Info{}, ErrEpisodeDone
	}
	e.steps++

	if e.steps > e.maxTurns {
		e.done = true
		return e.observe(), 0, false, true, Info{ActionMask: e.ActionMask(), Winner: meta.DRAW}, nil
	}

	mover := e.state.SideToMove()
	if index >= e.maxActions {
		index = -1
	}
	action, err := game.ActionAt(e.actions, index)
	if err != nil {
		e.done = true
		return e.observe(), -1, true, false, Info{
			ActionMask:    e.ActionMask(),
			Winner:        mover.Opponent().String(),
			InvalidAction: true,
		}, nil
	}

	next, outcome, err := e.state.Apply(action)
	if err != nil {
		return e.observe(), 0, false, false, Info{}, fmt.Errorf("step %d: %w", e.steps, err)
	}
	e.state = next
	if err := e.refresh(); err != nil {
		return e.observe(), 0, false, false, Info{}, err
	}

	if winner, ok := outcome.Winner(); ok {
		e.done = true
		return e.observe(), outcome.Reward(mover), true, false, Info{
			ActionMask: e.ActionMask(),
			Winner:     winner.String(),
		}, nil
	}
	return e.observe(), 0, false, false, Info{ActionMask: e.ActionMask()}, nil
}

// State returns the current position.
func (e *Env) State() game.GameState {
	return e.state
}

// LegalMoves returns the steps addressable by index in the current position.
func (e *Env) LegalMoves() []game.Move {
	moves := make([]game.Move, len(e.actions))
	for i, a := range e.actions {
		moves[i] = a[0]
	}
	return moves
}

func (e *Env) ActionMask() []bool {
	return game.ActionMask(e.actions, e.maxActions)
}

// Turns is the number of steps taken in the current episode.
func (e *Env) Turns() int {
	return e.steps
}

func (e *Env) refresh() error {
	actions, err := e.state.LegalActions()
	if err != nil {
		e.actions = nil
		return err
	}
	e.actions = actions
	return nil
}

func (e *Env) observe() Observation {
	return Observation{Encoding: e.state.Encode(), Key: e.state.Key()}
}
