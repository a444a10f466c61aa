package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// ManiacBot bets and raises big, shoves often and rarely folds
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) MakeDecision(g *game.Game, valid []ValidAction) Decision {
	d := m.decide(g, valid)
	m.logger.Debug("decision", "player", g.Hand.CurrentTurnPlayerID, "action", d.Action, "reason", d.Reasoning)
	return d
}

func (m *ManiacBot) decide(g *game.Game, valid []ValidAction) Decision {
	p, _ := g.TurnPlayer()
	short := p.Stack <= 20*g.Settings.BigBlind

	aggressive := func(reason string) (Decision, bool) {
		if short || m.rng.Float64() < 0.3 {
			if hasAction(game.AllIn, valid) {
				return Decision{Action: game.NewAction(game.AllIn), Reasoning: "maniac shove"}, true
			}
		}
		for _, kind := range []game.ActionKind{game.Bet, game.Raise} {
			if va, ok := findAction(kind, valid); ok {
				// Three quarters of the way up the legal range
				target := va.MinAmount + (va.MaxAmount-va.MinAmount)*3/4
				return Decision{Action: toAction(va, target), Reasoning: reason}, true
			}
		}
		return Decision{}, false
	}

	if hasAction(game.Check, valid) {
		if m.rng.Float64() < 0.85 {
			if d, ok := aggressive("maniac big bet"); ok {
				return d
			}
		}
		return firstOf(valid, "maniac checking", game.Check)
	}

	switch r := m.rng.Float64(); {
	case r < 0.6:
		if d, ok := aggressive("maniac big raise"); ok {
			return d
		}
		return firstOf(valid, "maniac calling", game.Call, game.AllIn)
	case r < 0.9:
		return firstOf(valid, "maniac calling", game.Call, game.AllIn)
	default:
		return firstOf(valid, "maniac folding", game.Fold)
	}
}
