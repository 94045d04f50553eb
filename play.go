package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"checkers/agent"
	"checkers/config"
	"checkers/game"
	"checkers/gamemaster"
	"checkers/qlearn"
	"checkers/searcher"
)

func runPlay(cfg *config.Configuration, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	opponent := fs.String("opponent", "heuristic", "Computer opponent: random, heuristic, rl or mcts")
	humanColor := fs.String("human", "b", "Side played by the human: b or r")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	dataDir := fs.String("data", cfg.DataDir, "Directory of the Q-table database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	human := game.Black
	switch *humanColor {
	case "b":
	case "r":
		human = game.Red
	default:
		return fmt.Errorf("unknown side %q", *humanColor)
	}

	ai, err := newOpponent(cfg, *opponent, *dataDir, *seed)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "6x6 Checkers (Human vs Computer)")
	fmt.Fprintf(out, "Human: %s | AI: %s (%s)\n", human, human.Opponent(), *opponent)
	fmt.Fprintln(out, "Enter moves like: a5 b4")
	fmt.Fprintln(out, "Type 'q' to quit.")
	return playSession(gamemaster.NewLocalEngine(), ai, human, in, out)
}

func newOpponent(cfg *config.Configuration, name, dataDir string, seed uint64) (agent.Agent, error) {
	switch name {
	case "rl":
		table, err := loadTable(dataDir)
		if err != nil {
			return nil, err
		}
		return qlearn.NewAgent(table, 0, seed), nil
	case "mcts":
		mcts := searcher.NewMCTS(cfg.Search.Goroutines,
			searcher.WithEpisodes(cfg.Search.Episodes),
			searcher.WithDuration(cfg.Search.Duration),
			searcher.WithCutoff(cfg.Search.Cutoff),
			searcher.WithSeed(seed))
		return agent.NewEvaluationAgent(mcts), nil
	default:
		return qlearn.NewOpponent(name, seed)
	}
}

// session is the subset of the interactive game master the terminal loop uses.
type session interface {
	gamemaster.Engine
	LegalMoves() ([]game.Move, error)
	State() game.GameState
	GameOver() bool
}

func playSession(s session, ai agent.Agent, human game.Side, in io.Reader, out io.Writer) error {
	_, getUpdate := s.Init()
	scanner := bufio.NewScanner(in)
	var lineage []searcher.Segment

	for {
		// Collect the moves the AI has not seen yet
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			lineage = append(lineage, searcher.Segment{Move: u.Move, StateHash: u.State.Hash()})
		}

		state := s.State()
		fmt.Fprintln(out)
		fmt.Fprint(out, state.Board())
		if s.GameOver() {
			fmt.Fprintf(out, "%s wins!\n", state.Winner())
			return nil
		}
		if sq, ok := state.Continuation(); ok {
			fmt.Fprintf(out, "%s must continue jumping with %s\n", state.SideToMove(), sq)
		}

		if state.SideToMove() != human {
			move, _, err := ai.FindMove(state, lineage)
			if err != nil {
				return err
			}
			lineage = nil
			if err := s.Play(move); err != nil {
				return err
			}
			fmt.Fprintf(out, "AI plays: %s\n", move)
			continue
		}

		fmt.Fprintf(out, "%s to move > ", state.SideToMove())
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nInput ended. Game ended.")
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "q", "quit", "exit":
			fmt.Fprintln(out, "Game ended.")
			return nil
		}

		legal, err := s.LegalMoves()
		if err != nil {
			return err
		}
		move, err := game.ParseMove(text, legal)
		switch {
		case errors.Is(err, game.ErrBadNotation):
			fmt.Fprintln(out, "Invalid input. Use format like 'a5 b4'.")
			continue
		case err != nil:
			fmt.Fprintln(out, "Illegal move.")
			continue
		}
		if err := s.Play(move); err != nil {
			return err
		}
	}
}
