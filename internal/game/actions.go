package game

import "fmt"

// Action is a player's decision. Amount is only meaningful for Bet and Raise,
// where it is the target street contribution rather than the increment.
type Action struct {
	Kind   ActionKind
	Amount int
}

// NewAction builds an action that carries no amount: Check, Call, Fold or
// AllIn.
func NewAction(kind ActionKind) Action {
	return Action{Kind: kind}
}

// BetTo opens the betting with a total street contribution of amount.
func BetTo(amount int) Action {
	return Action{Kind: Bet, Amount: amount}
}

// RaiseTo raises the street contribution to amount.
func RaiseTo(amount int) Action {
	return Action{Kind: Raise, Amount: amount}
}

func (a Action) String() string {
	if a.Kind == Bet || a.Kind == Raise {
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
	return a.Kind.String()
}

// LegalActions returns what the player on turn may do, in the order CHECK,
// CALL, BET, RAISE, FOLD, ALL_IN. A player who is not ACTIVE has no actions.
func LegalActions(players []Player, h *Hand) []ActionKind {
	idx, err := playerIndex(players, h.CurrentTurnPlayerID)
	if err != nil || h.Street.IsTerminal() {
		return nil
	}
	p := &players[idx]
	if !p.IsActive() {
		return nil
	}

	callNeeded := CallNeeded(h, p.ID)
	var actions []ActionKind
	if callNeeded == 0 {
		actions = append(actions, Check)
	}
	if callNeeded > 0 && p.Stack > 0 {
		actions = append(actions, Call)
	}
	if h.CurrentBet == 0 && p.Stack > 0 {
		actions = append(actions, Bet)
	}
	if h.CurrentBet > 0 && h.ReopenAllowed && p.Stack > 0 {
		actions = append(actions, Raise)
	}
	actions = append(actions, Fold)
	if p.Stack > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// Apply validates the action for the player on turn and returns the game
// after it, along with the log entry it produced. g itself is never
// modified, so on error the caller still holds the unchanged state.
func Apply(g *Game, a Action) (*Game, ActionLogEntry, error) {
	if g.Hand.Street.IsTerminal() {
		return nil, ActionLogEntry{}, ErrHandComplete
	}

	next := g.Clone()
	entry, err := applyAction(next.Players, &next.Hand, a)
	if err != nil {
		return nil, ActionLogEntry{}, err
	}

	// The snapshot is the state we started from.
	snap := g.Hand.snapshot()
	last := &next.Hand.ActionLog[len(next.Hand.ActionLog)-1]
	last.Snapshot = snap
	last.PlayersSnapshot = clonePlayers(g.Players)
	entry.Snapshot = last.Snapshot
	entry.PlayersSnapshot = last.PlayersSnapshot

	return next, entry, nil
}

// applyAction mutates players and h in place. It is only ever called on a
// clone.
func applyAction(players []Player, h *Hand, a Action) (ActionLogEntry, error) {
	idx, err := playerIndex(players, h.CurrentTurnPlayerID)
	if err != nil {
		return ActionLogEntry{}, err
	}
	p := &players[idx]
	if a.Kind != Fold && !p.IsActive() {
		return ActionLogEntry{}, fmt.Errorf("%w: %s is %s", ErrPlayerNotActive, p.ID, p.State)
	}

	var amount *int
	switch a.Kind {
	case Check:
		if CallNeeded(h, p.ID) > 0 {
			return ActionLogEntry{}, ErrCallRequired
		}

	case Call:
		callNeeded := CallNeeded(h, p.ID)
		if callNeeded <= 0 {
			return ActionLogEntry{}, ErrNothingToCall
		}
		paid, err := ApplyPayment(players, h, p.ID, callNeeded)
		if err != nil {
			return ActionLogEntry{}, err
		}
		amount = intPtr(paid)

	case Fold:
		if p.State != StateActive {
			return ActionLogEntry{}, ErrInvalidFoldState
		}
		p.State = StateFolded

	case Bet, Raise:
		if err := validateBetOrRaise(h, p, a); err != nil {
			return ActionLogEntry{}, err
		}
		reached, err := applyBetOrRaise(players, h, p.ID, a)
		if err != nil {
			return ActionLogEntry{}, err
		}
		amount = intPtr(reached)

	case AllIn:
		if p.Stack <= 0 {
			return ActionLogEntry{}, ErrNoChipsToAllIn
		}
		reached, err := applyAllIn(players, h, p.ID)
		if err != nil {
			return ActionLogEntry{}, err
		}
		amount = intPtr(reached)

	default:
		return ActionLogEntry{}, fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}

	entry := h.appendLog(ActionLogEntry{
		Type:     a.Kind,
		PlayerID: p.ID,
		Amount:   amount,
		Street:   h.Street,
	})

	if nextID, ok := nextActivePlayer(players, p.Seat); ok {
		h.CurrentTurnPlayerID = nextID
	}
	refreshPot(players, h)

	return entry, nil
}

func validateBetOrRaise(h *Hand, p *Player, a Action) error {
	if a.Kind == Bet && h.CurrentBet > 0 {
		return ErrNotBettable
	}
	if a.Kind == Raise {
		if h.CurrentBet == 0 {
			return ErrNoBetToRaise
		}
		if !h.ReopenAllowed {
			return ErrReopenClosed
		}
	}

	maxReachable := h.ContribThisStreet[p.ID] + p.Stack
	if a.Amount <= h.CurrentBet {
		return fmt.Errorf("%w: %d <= %d", ErrRaiseBelowCurrentBet, a.Amount, h.CurrentBet)
	}
	if a.Amount > maxReachable {
		return fmt.Errorf("%w: %d > %d", ErrExceedsStack, a.Amount, maxReachable)
	}

	if a.Kind == Bet {
		// An all-in for less than the minimum is still a legal bet.
		minBet := h.LastRaiseSize
		if maxReachable >= minBet && a.Amount < minBet {
			return fmt.Errorf("%w: minimum %d", ErrBetBelowMinimum, minBet)
		}
		return nil
	}

	if maxReachable <= h.CurrentBet {
		return ErrInsufficientStackToRaise
	}
	minRaiseTo := h.CurrentBet + h.LastRaiseSize
	if maxReachable >= minRaiseTo && a.Amount < minRaiseTo {
		return fmt.Errorf("%w: minimum %d", ErrRaiseBelowMinimum, minRaiseTo)
	}
	return nil
}

// applyBetOrRaise pays up to the target and updates the raise state. Only a
// bet or a full raise reopens the betting; a short all-in raise closes it
// without changing the raise size.
func applyBetOrRaise(players []Player, h *Hand, id PlayerID, a Action) (int, error) {
	prevBet := h.CurrentBet
	prevLastRaise := h.LastRaiseSize

	if _, err := ApplyPayment(players, h, id, a.Amount-h.ContribThisStreet[id]); err != nil {
		return 0, err
	}

	reached := h.ContribThisStreet[id]
	raiseSize := reached - prevBet
	h.CurrentBet = max(h.CurrentBet, reached)

	if a.Kind == Bet || raiseSize >= prevLastRaise {
		h.LastRaiseSize = raiseSize
		h.ReopenAllowed = true
	} else {
		h.ReopenAllowed = false
	}
	return reached, nil
}

// applyAllIn pushes the whole stack. Into an unopened street it acts as a bet;
// above the current bet it is a full or short raise; otherwise it is a call
// for less and leaves the raise state alone.
func applyAllIn(players []Player, h *Hand, id PlayerID) (int, error) {
	idx, err := playerIndex(players, id)
	if err != nil {
		return 0, err
	}
	prevBet := h.CurrentBet
	prevLastRaise := h.LastRaiseSize

	if _, err := ApplyPayment(players, h, id, players[idx].Stack); err != nil {
		return 0, err
	}
	reached := h.ContribThisStreet[id]

	switch {
	case prevBet == 0:
		h.CurrentBet = reached
		h.LastRaiseSize = reached
		h.ReopenAllowed = true
	case reached > prevBet:
		h.CurrentBet = reached
		if raiseSize := reached - prevBet; raiseSize >= prevLastRaise {
			h.LastRaiseSize = raiseSize
			h.ReopenAllowed = true
		} else {
			h.ReopenAllowed = false
		}
	}
	return reached, nil
}

// refreshPot keeps the pot structure in step with contributions: a single
// main pot until someone is all-in, then the full tiered partition.
func refreshPot(players []Player, h *Hand) {
	for i := range players {
		if players[i].State == StateAllIn && h.TotalContribThisHand[players[i].ID] > 0 {
			h.Pot = RecalcPots(players, h.TotalContribThisHand)
			return
		}
	}
	h.Pot = PotState{Main: h.TotalContribThisHand.Total()}
}
