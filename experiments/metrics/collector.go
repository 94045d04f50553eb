package metrics

import (
	"sync/atomic"
	"time"

	"checkers/game"
)

// SearchMetric summarises one call to the searcher.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Evaluate     game.Evaluate
	FullPlayouts int
	PlayoutPlies int // Total plies played across all rollouts
	IsTreeReused bool
}

// MeanPlayoutDepth is the average number of plies per rollout.
func (m SearchMetric) MeanPlayoutDepth() float64 {
	if m.Episodes == 0 {
		return 0
	}
	return float64(m.PlayoutPlies) / float64(m.Episodes)
}

type MoveMetric struct {
	Step    int
	Player  string // Side that moved
	Move    string
	Capture bool
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Side name, or "draw"
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Truncated      bool
}

type Collector interface {
	Start(goroutines, cutoff int, evaluate game.Evaluate)
	SetTreeReused(value bool)
	AddFullPlayout()
	AddPlayoutPlies(plies int)
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	evaluate     game.Evaluate
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	playoutPlies atomic.Int64
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) SetTreeReused(value bool) {
	c.isTreeReused.Store(value)
}

// Start resets the counters for a new search.
func (c *collector) Start(goroutines, cutoff int, evaluate game.Evaluate) {
	c.startTime = time.Now()
	c.goroutines = goroutines
	c.cutoff = cutoff
	c.evaluate = evaluate
	c.episodes.Store(0)
	c.fullPlayouts.Store(0)
	c.playoutPlies.Store(0)
}

func (c *collector) AddFullPlayout() {
	c.fullPlayouts.Add(1)
}

func (c *collector) AddPlayoutPlies(plies int) {
	c.playoutPlies.Add(int64(plies))
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   c.goroutines,
		Duration:     time.Since(c.startTime),
		Episodes:     int(c.episodes.Load()),
		FullPlayouts: int(c.fullPlayouts.Load()),
		PlayoutPlies: int(c.playoutPlies.Load()),
		Cutoff:       c.cutoff,
		Evaluate:     c.evaluate,
		IsTreeReused: c.isTreeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(goroutines, cutoff int, evaluate game.Evaluate) {}
func (c *dummyCollector) SetTreeReused(value bool)                             {}
func (c *dummyCollector) AddFullPlayout()                                      {}
func (c *dummyCollector) AddPlayoutPlies(plies int)                            {}
func (c *dummyCollector) AddEpisode()                                          {}
func (c *dummyCollector) Complete() SearchMetric                               { return SearchMetric{} }
