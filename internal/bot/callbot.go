package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// CallBot checks or calls every street and never bets
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) MakeDecision(g *game.Game, valid []ValidAction) Decision {
	var d Decision
	switch {
	case hasAction(game.Check, valid):
		d = firstOf(valid, "call-bot checking", game.Check)
	case hasAction(game.Call, valid):
		d = firstOf(valid, "call-bot calling", game.Call)
	default:
		d = firstOf(valid, "call-bot forced fold", game.Fold)
	}
	c.logger.Debug("decision", "player", g.Hand.CurrentTurnPlayerID, "action", d.Action, "reason", d.Reasoning)
	return d
}
