package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// FoldBot checks when it can and folds otherwise
type FoldBot struct {
	logger *log.Logger
}

func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) MakeDecision(g *game.Game, valid []ValidAction) Decision {
	d := firstOf(valid, "fold-bot", game.Check, game.Fold)
	f.logger.Debug("decision", "player", g.Hand.CurrentTurnPlayerID, "action", d.Action)
	return d
}
