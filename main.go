package main

import (
	"fmt"
	"os"
	"time"

	"checkers/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: checkers <command> [flags]

commands:
  play        play against an agent in the terminal
  train       train a Q-table against a baseline and store it
  evaluate    play the stored Q-table and baselines head to head
  experiment  compare MCTS configurations`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "play":
		err = runPlay(cfg, args, os.Stdin, os.Stdout)
	case "train":
		err = runTrain(cfg, args)
	case "evaluate":
		err = runEvaluate(cfg, args)
	case "experiment":
		err = runExperiment(cfg, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", command)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}
