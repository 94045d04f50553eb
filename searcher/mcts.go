package searcher

import (
	"sync"
	"sync/atomic"
	"time"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxCutoff = meta.MAX_TURNS

type Option func(mcts *MCTS)

// Segment is one move played since the last search together with the hash
// of the state it produced.
type Segment struct {
	Move      game.Move
	StateHash game.StateHash
}

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       atomic.Uint64
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed.Store(seed)
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines <= 0 {
		goroutines = 1
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateMaterial,
		metrics:    metrics.NewDummyCollector(),
	}
	m.seed.Store(uint64(time.Now().UnixNano()))
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every root
// move. lineage lists the moves played since the previous call so the
// matching subtree can be reused; a nil lineage always starts a new tree.
func (m *MCTS) Simulate(state game.GameState, lineage []Segment) (map[game.Move]float64, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, m.cutoff, m.evaluate)
	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	if m.episodes > 0 {
		m.iterate(state)
	} else if m.duration > 0 {
		m.countdown(state)
	} else {
		panic("Must specify search episodes or duration")
	}
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	policy := m.root.Policy()
	return policy, metric
}

func (m *MCTS) iterate(state game.GameState) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.newRand()
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state, rng)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.GameState) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.newRand()
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state, rng)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// newRand hands each worker its own source since x/exp/rand sources are not
// safe for concurrent use.
func (m *MCTS) newRand() *rand.Rand {
	return rand.New(rand.NewSource(m.seed.Add(1)))
}

func (m *MCTS) findRoot(path []Segment, state game.GameState) {
	root := traverse(m.root, path)
	if root == nil || root.hash != state.Hash() {
		m.root = newRoot(state)
		m.metrics.SetTreeReused(false)
		return
	}
	root.parent = nil
	m.root = root
	m.metrics.SetTreeReused(true)
}

func traverse(root *decision, path []Segment) *decision {
	if root == nil || path == nil {
		return nil
	}

	node := root
	for _, segment := range path {
		i := utils.FindIndex(node.explored, segment.Move)
		if i < 0 { // Node has not expanded this move
			return nil
		}
		child := node.children[i]
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.GameState, rng *rand.Rand) {
	newNode, newState := selectThenExpand(m.root, state)
	player, score := rollout(newState, m.cutoff, m.evaluate, rng, m.metrics)
	backup(newNode, player, score)
}

func selectThenExpand(root *decision, state game.GameState) (*decision, game.GameState) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state game.GameState, cutoff int, evaluate game.Evaluate, rng *rand.Rand, metrics metrics.Collector) (game.Side, float64) {
	depth := 0
	moves := legalMoves(state)
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = play(state, move)
		moves = legalMoves(state)
		depth++
	}
	metrics.AddPlayoutPlies(depth)

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return state.SideToMove().Opponent(), Win
	}

	// At cutoff state, return an evaluation score from the side to move's perspective
	return state.SideToMove(), evaluate(state)
}

func backup(newNode *decision, player game.Side, score float64) {
	node := newNode
	for node != nil {
		parent := node.Backup(player, score)
		node = parent
	}
}
