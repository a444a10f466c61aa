// Package simulator plays many games between scripted bots and checks the
// engine's bookkeeping after every transition.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/bot"
	"github.com/lox/pokerdealer/internal/game"
	"github.com/lox/pokerdealer/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games        int
	HandsPerGame int
	Players      int
	Stack        int
	SmallBlind   int
	BigBlind     int
	Seed         int64
	Workers      int      // defaults to GOMAXPROCS
	Bots         []string // assigned to seats round-robin; defaults to "rand"
	UndoEvery    int      // undo and replay every n-th action; 0 disables
	Logger       *log.Logger
}

// Stats summarises a simulation run
type Stats struct {
	Games       int
	Hands       int
	Actions     int
	Showdowns   int
	Uncontested int
	SidePots    int // hands settled with at least one side pot
	SplitPots   int // pots shared by more than one winner
	Undos       int
	MaxPot      int
}

// Add folds o into s.
func (s *Stats) Add(o Stats) {
	s.Games += o.Games
	s.Hands += o.Hands
	s.Actions += o.Actions
	s.Showdowns += o.Showdowns
	s.Uncontested += o.Uncontested
	s.SidePots += o.SidePots
	s.SplitPots += o.SplitPots
	s.Undos += o.Undos
	s.MaxPot = max(s.MaxPot, o.MaxPot)
}

// Simulator runs games in parallel
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration, filling in
// defaults for zero values.
func New(config Config) *Simulator {
	if config.Players == 0 {
		config.Players = 6
	}
	if config.BigBlind == 0 {
		config.BigBlind = 100
	}
	if config.SmallBlind == 0 {
		config.SmallBlind = config.BigBlind / 2
	}
	if config.Stack == 0 {
		config.Stack = config.BigBlind * 100
	}
	if config.HandsPerGame == 0 {
		config.HandsPerGame = 100
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if len(config.Bots) == 0 {
		config.Bots = []string{"rand"}
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the combined statistics. The first game
// that breaks an invariant cancels the rest.
func (s *Simulator) Run(ctx context.Context) (Stats, error) {
	for _, name := range s.config.Bots {
		if _, err := bot.New(name, nil, s.config.Logger); err != nil {
			return Stats{}, err
		}
	}

	results := make([]Stats, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		g.Go(func() error {
			stats, err := s.playGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, s.config.Seed, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for _, r := range results {
		total.Add(r)
	}
	s.config.Logger.Info("simulation complete",
		"games", total.Games, "hands", total.Hands, "actions", total.Actions,
		"showdowns", total.Showdowns, "side_pots", total.SidePots)
	return total, nil
}

// table is one game in progress
type table struct {
	rng    *rand.Rand
	bots   map[game.PlayerID]bot.Bot
	g      *game.Game
	chips  int
	stats  Stats
	undo   int
	logger *log.Logger
}

func (s *Simulator) playGame(ctx context.Context, index int) (Stats, error) {
	rng := randutil.Stream(s.config.Seed, index)
	logger := s.config.Logger.With("game", index)

	setups := make([]game.PlayerSetup, s.config.Players)
	bots := make(map[game.PlayerID]bot.Bot, s.config.Players)
	for i := range setups {
		id := game.PlayerID(fmt.Sprintf("p%d", i+1))
		setups[i] = game.PlayerSetup{ID: id, Name: fmt.Sprintf("Player %d", i+1), Stack: s.config.Stack}
		b, err := bot.New(s.config.Bots[i%len(s.config.Bots)], rng, logger)
		if err != nil {
			return Stats{}, err
		}
		bots[id] = b
	}

	g, err := game.NewGame(game.Settings{
		SmallBlind: s.config.SmallBlind,
		BigBlind:   s.config.BigBlind,
	}, setups)
	if err != nil {
		return Stats{}, err
	}

	t := &table{rng: rng, bots: bots, g: g, chips: game.ChipsInPlay(g), undo: s.config.UndoEvery, logger: logger}
	t.stats.Games = 1

	for hand := 0; hand < s.config.HandsPerGame; hand++ {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		if err := t.playHand(); err != nil {
			return Stats{}, fmt.Errorf("hand %d: %w", t.g.Hand.HandNumber, err)
		}

		next, err := game.StartNextHand(t.g)
		if errors.Is(err, game.ErrInsufficientPlayers) {
			logger.Debug("table broken", "hands", t.stats.Hands)
			break
		}
		if err != nil {
			return Stats{}, err
		}
		if err := t.commit(next); err != nil {
			return Stats{}, err
		}
	}
	return t.stats, nil
}

// playHand drives the current hand to payout.
func (t *table) playHand() error {
	for t.g.Hand.Street != game.Payout {
		next, err := t.step()
		if err != nil {
			return fmt.Errorf("%s: %w", t.g.Hand.Street, err)
		}
		if err := t.commit(next); err != nil {
			return err
		}
	}

	h := &t.g.Hand
	t.stats.Hands++
	t.stats.MaxPot = max(t.stats.MaxPot, h.PayoutResult.Pot.Total())
	if len(h.PayoutResult.Breakdown) > 1 {
		t.stats.SidePots++
	}
	if len(h.PayoutResult.Winners.Main) > 1 {
		t.stats.SplitPots++
	}
	for _, ids := range h.PayoutResult.Winners.Sides {
		if len(ids) > 1 {
			t.stats.SplitPots++
		}
	}
	return nil
}

// step makes whatever transition the hand needs next.
func (t *table) step() (*game.Game, error) {
	g := t.g
	h := &g.Hand

	switch end, ended := game.DetectHandEnd(g.Players, h); {
	case h.Street == game.Showdown:
		t.stats.Showdowns++
		return game.SettleShowdown(g, t.pickWinners())
	case ended && end == game.HandEndPayout:
		t.stats.Uncontested++
		return game.AwardUncontested(g)
	case ended:
		next, _, err := game.GoToShowdown(g)
		return next, err
	case game.IsRoundComplete(g.Players, h):
		next, _, err := game.AdvanceStreet(g)
		return next, err
	}

	// Everyone left is all in
	if next, _, err := game.GoToShowdown(g); err == nil {
		return next, nil
	}

	d, err := bot.Decide(t.bots[h.CurrentTurnPlayerID], g)
	if err != nil {
		return nil, err
	}
	next, _, err := game.Apply(g, d.Action)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", h.CurrentTurnPlayerID, d.Action, err)
	}
	t.stats.Actions++

	if t.undo > 0 && t.stats.Actions%t.undo == 0 {
		if err := t.checkUndo(next); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// checkUndo verifies that undoing next restores the current state.
func (t *table) checkUndo(next *game.Game) error {
	back, err := game.Undo(next)
	if err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	t.stats.Undos++

	want, got := &t.g.Hand, &back.Hand
	switch {
	case got.Street != want.Street:
		return fmt.Errorf("undo restored street %s, want %s", got.Street, want.Street)
	case got.CurrentTurnPlayerID != want.CurrentTurnPlayerID:
		return fmt.Errorf("undo restored turn %q, want %q", got.CurrentTurnPlayerID, want.CurrentTurnPlayerID)
	case len(got.ActionLog) != len(want.ActionLog):
		return fmt.Errorf("undo left %d log entries, want %d", len(got.ActionLog), len(want.ActionLog))
	case got.Pot.Total() != want.Pot.Total():
		return fmt.Errorf("undo restored pot %d, want %d", got.Pot.Total(), want.Pot.Total())
	}
	return t.verify(back)
}

// commit checks next and makes it current.
func (t *table) commit(next *game.Game) error {
	if err := t.verify(next); err != nil {
		return err
	}
	t.g = next
	return nil
}

func (t *table) verify(g *game.Game) error {
	if chips := game.ChipsInPlay(g); chips != t.chips {
		return fmt.Errorf("chips in play changed from %d to %d", t.chips, chips)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if pr := g.Hand.PayoutResult; pr != nil {
		paid := 0
		for _, v := range pr.Payouts {
			paid += v
		}
		if paid != pr.Pot.Total() {
			return fmt.Errorf("paid %d from a pot of %d", paid, pr.Pot.Total())
		}
	}
	return nil
}

// pickWinners chooses a random non-empty subset of each pot's eligible
// players. No cards are dealt, so every eligible player can win.
func (t *table) pickWinners() game.PotWinners {
	state, breakdown := game.BuildBreakdown(t.g.Players, &t.g.Hand)

	selection := make(map[string][]game.PlayerID, len(breakdown))
	for _, pot := range breakdown {
		var ids []game.PlayerID
		for _, id := range pot.EligiblePlayerIDs {
			if t.rng.IntN(3) == 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 && len(pot.EligiblePlayerIDs) > 0 {
			ids = []game.PlayerID{pot.EligiblePlayerIDs[t.rng.IntN(len(pot.EligiblePlayerIDs))]}
		}
		selection[pot.ID] = ids
	}
	t.logger.Debug("showdown", "hand", t.g.Hand.HandNumber, "pots", len(breakdown))
	return game.WinnersFromSelection(len(state.Sides), selection)
}
