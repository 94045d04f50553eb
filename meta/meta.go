// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines MCTS agents search with.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 400

// WITH_CUTOFF defines the rollout depth after which MCTS falls back to the evaluation function.
const WITH_CUTOFF = 60

// MAX_TURNS caps a game or an RL episode; reaching it ends the game in a draw.
const MAX_TURNS = 200

// MAX_ACTIONS is the fixed width of the RL action space and its mask.
const MAX_ACTIONS = 64

// DRAW labels a truncated game.
const DRAW = "draw"
