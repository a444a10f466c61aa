package game

// Undo reverts the most recent log entry by restoring the snapshot it carries
// and truncating the log before it. Entries that did not touch the roster
// carry no players snapshot and leave the players as they are.
func Undo(g *Game) (*Game, error) {
	log := g.Hand.ActionLog
	if len(log) == 0 {
		return nil, ErrNothingToUndo
	}
	last := log[len(log)-1]
	if last.Snapshot == nil {
		return nil, ErrNothingToUndo
	}

	next := g.Clone()
	restored := last.Snapshot.Clone()
	restored.ActionLog = make([]ActionLogEntry, len(log)-1)
	copy(restored.ActionLog, log[:len(log)-1])
	next.Hand = restored

	if last.PlayersSnapshot != nil {
		next.Players = clonePlayers(last.PlayersSnapshot)
	}
	return next, nil
}
