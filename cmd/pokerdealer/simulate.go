package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/pokerdealer/internal/simulator"
)

// SimulateCmd plays bot games against the engine.
type SimulateCmd struct {
	Games     int      `help:"Number of games" default:"100"`
	Hands     int      `help:"Hands per game" default:"200"`
	Players   int      `help:"Players per table" default:"6"`
	Stack     int      `help:"Starting stack (defaults to 100 big blinds)"`
	Seed      int64    `help:"Random seed" default:"1"`
	Workers   int      `help:"Parallel games (defaults to GOMAXPROCS)"`
	Bots      []string `help:"Bot strategies assigned to seats in turn" default:"rand,maniac,call"`
	UndoEvery int      `help:"Check undo after every n-th action (0 disables)" default:"7"`
}

func (cmd *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(globals.stderr(), cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := simulator.New(simulator.Config{
		Games:        cmd.Games,
		HandsPerGame: cmd.Hands,
		Players:      cmd.Players,
		Stack:        cmd.Stack,
		SmallBlind:   cfg.Table.SmallBlind,
		BigBlind:     cfg.Table.BigBlind,
		Seed:         cmd.Seed,
		Workers:      cmd.Workers,
		Bots:         cmd.Bots,
		UndoEvery:    cmd.UndoEvery,
		Logger:       logger.WithPrefix("simulator"),
	}).Run(ctx)
	if err != nil {
		return err
	}

	renderStats(globals.stdout(), newStyles(globals.stdout(), globals.NoColor), stats)
	return nil
}
