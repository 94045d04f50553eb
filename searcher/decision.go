package searcher

import (
	"math"
	"sync"

	"checkers/game"
)

// decision is a search tree node for one game state. Rewards are kept from
// the point of view of player, the side whose move led here, so a parent
// picks the child that is best for the side it lets move. Multi-jump chains,
// where the same side moves again, need no special handling.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     game.Side
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, player game.Side, state game.GameState) *decision {
	moves := legalMoves(state)
	return &decision{
		parent:     parent,
		player:     player,
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

func newRoot(state game.GameState) *decision {
	return newDecision(nil, state.SideToMove().Opponent(), state)
}

// SelectOrExpand descends one level. It expands the next unexplored move if
// any, otherwise selects the child with the best UCB score. Terminal nodes
// return themselves.
func (d *decision) SelectOrExpand(state game.GameState) (*decision, game.GameState, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.explored) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		next := play(state, move)
		child := newDecision(d, state.SideToMove(), next)
		child.applyLoss()
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		return child, next, false
	}

	// Fully expanded node
	i := d.pickChild()
	child := d.children[i]
	child.applyLoss()
	return child, play(state, d.explored[i]), true
}

func (d *decision) pickChild() int {
	visits := d.visits
	if visits == 0 {
		// The root carries no virtual loss, so before its first backup only
		// the in-flight visits of its children count
		visits = d.childVisits()
	}
	if visits == 0 {
		panic("node has children but no visits")
	}
	policy := newUCB(CSquared, visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) childVisits() float64 {
	total := 0.0
	for _, child := range d.children {
		child.RLock()
		total += child.visits
		child.RUnlock()
	}
	return total
}

func (d *decision) score(policy ucb) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

// applyLoss discourages other goroutines from following the same path until
// the playout is backed up.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

// Backup records a playout whose result is score from player's perspective
// and returns the parent.
func (d *decision) Backup(player game.Side, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.rewards -= Loss
		d.visits--
	}

	if d.player == player {
		d.rewards += score
	} else {
		d.rewards -= score
	}
	d.visits++

	return d.parent
}

// Policy returns the visit count of every explored move.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		child.RLock()
		policy[d.explored[i]] = child.visits
		child.RUnlock()
	}
	return policy
}

func legalMoves(state game.GameState) []game.Move {
	moves, err := state.LegalMoves()
	if err != nil {
		panic(err)
	}
	return moves
}

func play(state game.GameState, move game.Move) game.GameState {
	next, _, err := state.Play(move)
	if err != nil {
		panic(err)
	}
	return next
}
