// Package bot provides scripted players that drive the engine in simulations.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// ValidAction is one legal action for the player on turn. MinAmount and
// MaxAmount bound the target for Bet and Raise and are zero otherwise.
type ValidAction struct {
	Kind      game.ActionKind
	MinAmount int
	MaxAmount int
}

// Decision is what a bot chose and why
type Decision struct {
	Action    game.Action
	Reasoning string
}

// Bot picks an action for the player on turn
type Bot interface {
	MakeDecision(g *game.Game, valid []ValidAction) Decision
}

// Names lists the strategies New accepts.
var Names = []string{"fold", "call", "rand", "maniac"}

// New returns the bot registered under name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	switch name {
	case "fold":
		return NewFoldBot(logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "rand":
		return NewRandBot(rng, logger), nil
	case "maniac":
		return NewManiacBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names)
	}
}

// ValidActions expands the engine's legal actions with bet and raise ranges.
// Amounts are street contribution targets.
func ValidActions(g *game.Game) []ValidAction {
	p, ok := g.TurnPlayer()
	if !ok {
		return nil
	}
	h := &g.Hand
	maxReachable := h.ContribThisStreet[p.ID] + p.Stack

	var valid []ValidAction
	for _, kind := range game.LegalActions(g.Players, h) {
		va := ValidAction{Kind: kind}
		switch kind {
		case game.Bet:
			va.MinAmount = min(max(h.LastRaiseSize, 1), maxReachable)
			va.MaxAmount = maxReachable
		case game.Raise:
			if maxReachable <= h.CurrentBet {
				continue
			}
			va.MinAmount = min(h.CurrentBet+h.LastRaiseSize, maxReachable)
			va.MaxAmount = maxReachable
		}
		valid = append(valid, va)
	}
	return valid
}

// Decide asks b for a decision and checks it is one of the valid actions.
func Decide(b Bot, g *game.Game) (Decision, error) {
	valid := ValidActions(g)
	if len(valid) == 0 {
		return Decision{}, fmt.Errorf("no valid actions for %q", g.Hand.CurrentTurnPlayerID)
	}
	d := b.MakeDecision(g, valid)
	i := slices.IndexFunc(valid, func(va ValidAction) bool { return va.Kind == d.Action.Kind })
	if i < 0 {
		return d, fmt.Errorf("bot chose %s, not in %v", d.Action, valid)
	}
	return d, nil
}

func hasAction(kind game.ActionKind, valid []ValidAction) bool {
	_, ok := findAction(kind, valid)
	return ok
}

func findAction(kind game.ActionKind, valid []ValidAction) (ValidAction, bool) {
	for _, va := range valid {
		if va.Kind == kind {
			return va, true
		}
	}
	return ValidAction{}, false
}

// toAction converts a valid action into an engine action aimed at amount,
// clamped to the legal range.
func toAction(va ValidAction, amount int) game.Action {
	switch va.Kind {
	case game.Bet:
		return game.BetTo(min(max(amount, va.MinAmount), va.MaxAmount))
	case game.Raise:
		return game.RaiseTo(min(max(amount, va.MinAmount), va.MaxAmount))
	default:
		return game.NewAction(va.Kind)
	}
}

// firstOf returns a decision for the first of kinds that is valid, falling
// back to the first valid action.
func firstOf(valid []ValidAction, reasoning string, kinds ...game.ActionKind) Decision {
	for _, kind := range kinds {
		if va, ok := findAction(kind, valid); ok {
			return Decision{Action: toAction(va, va.MinAmount), Reasoning: reasoning}
		}
	}
	return Decision{Action: toAction(valid[0], valid[0].MinAmount), Reasoning: "fallback: " + reasoning}
}
