package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerdealer/internal/game"
	"github.com/lox/pokerdealer/internal/storage"
)

// NewCmd deals a fresh game from the configured table.
type NewCmd struct {
	Force bool `short:"f" help:"Replace a saved game that is still in progress"`
}

func (cmd *NewCmd) Run(globals *Globals) error {
	e, err := globals.open(false)
	if err != nil {
		return err
	}

	if !cmd.Force {
		available, err := e.session.ResumeAvailability()
		if err != nil {
			return err
		}
		if available {
			return fmt.Errorf("a game is already saved at %s; use --force to replace it", e.cfg.Storage.Path)
		}
	}

	if err := e.session.Start(e.cfg.Settings(), e.cfg.PlayerSetups()); err != nil {
		return err
	}
	e.show()
	return nil
}

// StatusCmd prints the current hand.
type StatusCmd struct {
	JSON bool `help:"Print the saved game as JSON"`
}

func (cmd *StatusCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if cmd.JSON {
		data, err := storage.Encode(e.session.Game())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, string(data))
		return err
	}
	e.show()
	return nil
}

// ActCmd applies an action for the player on turn.
type ActCmd struct {
	Action string `arg:"" enum:"check,call,bet,raise,fold,allin" help:"One of check, call, bet, raise, fold, allin"`
	Amount int    `arg:"" optional:"" help:"Street total to bet or raise to"`
}

func (cmd *ActCmd) Run(globals *Globals) error {
	kind, err := game.ParseActionKind(cmd.Action)
	if err != nil {
		return err
	}
	a := game.NewAction(kind)
	if kind == game.Bet || kind == game.Raise {
		if cmd.Amount <= 0 {
			return fmt.Errorf("%s needs an amount", cmd.Action)
		}
		a = game.Action{Kind: kind, Amount: cmd.Amount}
	}

	e, err := globals.open(true)
	if err != nil {
		return err
	}
	entry, err := e.session.Act(a)
	if err != nil {
		return err
	}
	e.logger.Info("Action", "player", entry.PlayerID, "action", entry.Type, "street", entry.Street)
	e.show()
	return nil
}

// AdvanceCmd moves to the next street.
type AdvanceCmd struct{}

func (cmd *AdvanceCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if _, err := e.session.Advance(); err != nil {
		return err
	}
	e.show()
	return nil
}

// ShowdownCmd skips to showdown when betting is closed.
type ShowdownCmd struct{}

func (cmd *ShowdownCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if _, err := e.session.GoToShowdown(); err != nil {
		return err
	}
	e.show()
	return nil
}

// SettleCmd pays out a showdown.
type SettleCmd struct {
	Main []string `short:"m" required:"" help:"Winners of the main pot (comma separated)"`
	Side []string `short:"s" sep:"none" help:"Winners of the next side pot, comma separated; repeat once per side pot"`
}

func (cmd *SettleCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}

	g := e.session.Game()
	state, _ := game.BuildBreakdown(g.Players, &g.Hand)
	if len(cmd.Side) > len(state.Sides) {
		return fmt.Errorf("%d side pot winners given but the hand has %d side pots", len(cmd.Side), len(state.Sides))
	}

	selection := map[string][]game.PlayerID{"main": toIDs(cmd.Main)}
	for i, side := range cmd.Side {
		selection[fmt.Sprintf("side%d", i+1)] = toIDs(strings.Split(side, ","))
	}
	if err := e.session.Settle(game.WinnersFromSelection(len(state.Sides), selection)); err != nil {
		return err
	}
	e.show()
	return nil
}

func toIDs(names []string) []game.PlayerID {
	var ids []game.PlayerID
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			ids = append(ids, game.PlayerID(name))
		}
	}
	return ids
}

// AwardCmd pays an uncontested pot.
type AwardCmd struct{}

func (cmd *AwardCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if err := e.session.AwardUncontested(); err != nil {
		return err
	}
	e.show()
	return nil
}

// NextCmd starts the next hand.
type NextCmd struct{}

func (cmd *NextCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if err := e.session.NextHand(); err != nil {
		return err
	}
	e.show()
	return nil
}

// UndoCmd steps back one log entry.
type UndoCmd struct{}

func (cmd *UndoCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}
	if err := e.session.Undo(); err != nil {
		return err
	}
	e.show()
	return nil
}

// ResetCmd deletes the saved game.
type ResetCmd struct{}

func (cmd *ResetCmd) Run(globals *Globals) error {
	e, err := globals.open(false)
	if err != nil {
		return err
	}
	if err := e.session.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(e.out, e.styles.success.Render("Saved game cleared"))
	return nil
}
