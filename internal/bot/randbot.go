package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// RandBot picks uniformly among the valid actions, never folding when it
// could check, with bet and raise targets drawn from the legal range.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(g *game.Game, valid []ValidAction) Decision {
	choices := valid
	if hasAction(game.Check, valid) {
		choices = make([]ValidAction, 0, len(valid))
		for _, va := range valid {
			if va.Kind != game.Fold {
				choices = append(choices, va)
			}
		}
	}

	va := choices[r.rng.IntN(len(choices))]
	amount := va.MinAmount
	if va.MaxAmount > va.MinAmount {
		amount += r.rng.IntN(va.MaxAmount - va.MinAmount + 1)
	}

	d := Decision{Action: toAction(va, amount), Reasoning: "rand-bot random action"}
	r.logger.Debug("decision", "player", g.Hand.CurrentTurnPlayerID, "action", d.Action)
	return d
}
