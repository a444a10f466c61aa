package game

// IsRoundComplete reports whether the betting round can close: every ACTIVE
// player has matched the current bet and acted at least once this street.
// Folded and all-in players are exempt. With nobody ACTIVE the round is not
// considered complete.
func IsRoundComplete(players []Player, h *Hand) bool {
	active := 0
	for i := range players {
		p := &players[i]
		if !p.IsActive() {
			continue
		}
		active++
		if h.ContribThisStreet[p.ID] != h.CurrentBet {
			return false
		}
		if !h.actedThisStreet(p.ID) {
			return false
		}
	}
	return active > 0
}

// AdvanceStreet closes a completed betting round and opens the next street.
func AdvanceStreet(g *Game) (*Game, ActionLogEntry, error) {
	if g.Hand.Street.IsTerminal() {
		return nil, ActionLogEntry{}, ErrHandComplete
	}
	if !IsRoundComplete(g.Players, &g.Hand) {
		return nil, ActionLogEntry{}, ErrRoundNotComplete
	}

	next := g.Clone()
	entry, err := moveToStreet(next.Players, &next.Hand, next.Settings.BigBlind, g.Hand.Street.next())
	if err != nil {
		return nil, ActionLogEntry{}, err
	}
	return next, entry, nil
}

// GoToShowdown skips the remaining streets when no more betting can happen:
// two or more players are still in, at most one of them can act and that
// player owes nothing. A completed river also qualifies.
func GoToShowdown(g *Game) (*Game, ActionLogEntry, error) {
	h := &g.Hand
	if h.Street.IsTerminal() {
		return nil, ActionLogEntry{}, ErrHandComplete
	}
	if !bettingClosed(g.Players, h) {
		return nil, ActionLogEntry{}, ErrShowdownNotReady
	}

	next := g.Clone()
	entry, err := moveToStreet(next.Players, &next.Hand, next.Settings.BigBlind, Showdown)
	if err != nil {
		return nil, ActionLogEntry{}, err
	}
	return next, entry, nil
}

func bettingClosed(players []Player, h *Hand) bool {
	if remainingPlayers(players, h) < 2 {
		return false
	}
	if h.Street == River && IsRoundComplete(players, h) {
		return true
	}

	active := 0
	for i := range players {
		p := &players[i]
		if !p.IsActive() {
			continue
		}
		active++
		if CallNeeded(h, p.ID) > 0 {
			return false
		}
	}
	return active <= 1
}

// moveToStreet resets street-scoped state and logs the transition. The
// entry is tagged with the street being entered and snapshots the hand as it
// was before.
func moveToStreet(players []Player, h *Hand, bigBlind int, street Street) (ActionLogEntry, error) {
	snap := h.snapshot()

	h.Street = street
	h.CurrentBet = 0
	h.LastRaiseSize = bigBlind
	h.ReopenAllowed = true
	h.ContribThisStreet = newContributions(players)

	first, err := FirstToAct(players, street, h.DealerSeat, h.BBSeat)
	switch {
	case err == nil:
		h.CurrentTurnPlayerID = first
	case street != Showdown:
		return ActionLogEntry{}, err
	}

	return h.appendLog(ActionLogEntry{
		Type:     ActionAdvanceStreet,
		Street:   street,
		Snapshot: snap,
	}), nil
}
