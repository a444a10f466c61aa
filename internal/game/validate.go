package game

import "fmt"

// Validate checks the structural invariants every engine-produced game
// satisfies. It is used on state read back from storage and by the
// simulator after every transition.
func (g *Game) Validate() error {
	if g.Settings.SmallBlind < 0 || g.Settings.BigBlind < 0 {
		return fmt.Errorf("%w: blinds %d/%d", ErrInvalidState, g.Settings.SmallBlind, g.Settings.BigBlind)
	}

	ids := make(map[PlayerID]bool, len(g.Players))
	seats := make(map[int]bool, len(g.Players))
	for _, p := range g.Players {
		switch {
		case p.ID == "":
			return fmt.Errorf("%w: player with empty id", ErrInvalidState)
		case ids[p.ID]:
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidState, p.ID)
		case seats[p.Seat]:
			return fmt.Errorf("%w: duplicate seat %d", ErrInvalidState, p.Seat)
		case p.Stack < 0:
			return fmt.Errorf("%w: %s has negative stack %d", ErrInvalidState, p.ID, p.Stack)
		}
		ids[p.ID] = true
		seats[p.Seat] = true
	}

	h := &g.Hand
	if h.Street < Preflop || h.Street > Payout {
		return fmt.Errorf("%w: street %d", ErrInvalidState, int(h.Street))
	}
	if h.CurrentTurnPlayerID != "" && !ids[h.CurrentTurnPlayerID] {
		return fmt.Errorf("%w: turn belongs to unknown player %q", ErrInvalidState, h.CurrentTurnPlayerID)
	}

	for id, amount := range h.TotalContribThisHand {
		if !ids[id] {
			return fmt.Errorf("%w: contribution from unknown player %q", ErrInvalidState, id)
		}
		if amount < 0 || h.ContribThisStreet[id] > amount {
			return fmt.Errorf("%w: contributions for %s", ErrInvalidState, id)
		}
	}
	for id, amount := range h.ContribThisStreet {
		if amount < 0 || amount > h.CurrentBet {
			return fmt.Errorf("%w: %s contributed %d against a bet of %d", ErrInvalidState, id, amount, h.CurrentBet)
		}
	}

	if h.Street == Payout {
		if h.PayoutResult == nil {
			return fmt.Errorf("%w: payout without a result", ErrInvalidState)
		}
		if h.Pot.Total() != 0 {
			return fmt.Errorf("%w: %d chips left in a settled pot", ErrInvalidState, h.Pot.Total())
		}
		return nil
	}
	if got, want := h.Pot.Total(), h.TotalContribThisHand.Total(); got != want {
		return fmt.Errorf("%w: pot %d does not match contributions %d", ErrInvalidState, got, want)
	}
	return nil
}
