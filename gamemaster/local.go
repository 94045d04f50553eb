package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"checkers/game"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotStarted  = errors.New("game has not been initialised")
	ErrIllegalMove = errors.New("illegal move")
)

// Update is one applied step and the position it produced.
type Update struct {
	Move  game.Move
	State game.GameState
}

// UpdateGetter returns the oldest unread update, or false when there is none.
type UpdateGetter func() (Update, bool)

type Engine interface {
	Init() (game.GameState, UpdateGetter)
	Play(game.Move) error
}

type localEngine struct {
	mu       sync.Mutex
	start    game.GameState
	state    game.GameState
	pending  []Update
	started  bool
	gameOver bool
}

// NewLocalEngine returns a session that starts from the standard opening.
func NewLocalEngine() *localEngine {
	return &localEngine{start: game.InitialState()}
}

// NewLocalEngineFrom returns a session that starts from state.
func NewLocalEngineFrom(state game.GameState) *localEngine {
	return &localEngine{start: state}
}

func (e *localEngine) Init() (game.GameState, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = e.start
	e.pending = nil
	e.started = true
	e.gameOver = e.state.Outcome().Terminal()

	return e.state, func() (Update, bool) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if len(e.pending) == 0 { // No updates yet
			return Update{}, false
		}
		u := e.pending[0]
		e.pending = e.pending[1:]
		return u, true
	}
}

// Play applies one step for the side to move. During a multi-jump the same
// side plays again until the chain ends.
func (e *localEngine) Play(move game.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return ErrNotStarted
	}
	if e.gameOver {
		return ErrGameOver
	}

	legalMoves, err := e.state.LegalMoves()
	if err != nil {
		return err
	}
	if !isLegal(legalMoves, move) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, move, e.state.SideToMove())
	}

	next, outcome, err := e.state.Play(move)
	if err != nil {
		return err
	}
	e.state = next
	e.gameOver = outcome.Terminal()
	e.pending = append(e.pending, Update{Move: move, State: next})
	return nil
}

// LegalMoves lists the steps Play currently accepts.
func (e *localEngine) LegalMoves() ([]game.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return nil, nil
	}
	return e.state.LegalMoves()
}

// State returns the current position.
func (e *localEngine) State() game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// GameOver reports whether a side has won.
func (e *localEngine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.gameOver
}

func isLegal(legalMoves []game.Move, move game.Move) bool {
	for _, lm := range legalMoves {
		if lm == move {
			return true
		}
	}
	return false
}
