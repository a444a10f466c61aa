package game

import (
	"errors"
	"fmt"
	"slices"
)

// NewGame seats players in list order and deals the first hand with the
// button on seat 0.
func NewGame(settings Settings, setups []PlayerSetup) (*Game, error) {
	if settings.RoundingRule == "" {
		settings.RoundingRule = RoundingButtonNear
	}

	players := make([]Player, 0, len(setups))
	seen := make(map[PlayerID]bool, len(setups))
	for i, setup := range setups {
		if seen[setup.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, setup.ID)
		}
		seen[setup.ID] = true
		players = append(players, Player{
			ID:    setup.ID,
			Name:  setup.Name,
			Seat:  i,
			Stack: max(0, setup.Stack),
		})
	}
	normalizeForNewHand(players)

	hand, err := CreateHand(settings, players, 0, 1)
	if err != nil {
		return nil, err
	}
	return &Game{Settings: settings, Players: players, Hand: hand}, nil
}

// CreateHand posts the blinds and returns a fresh preflop hand. Blind
// payments are debited from players in place and clamped to their stacks.
func CreateHand(settings Settings, players []Player, dealerSeat, handNumber int) (Hand, error) {
	sbSeat, bbSeat, err := BlindSeats(players, dealerSeat)
	if err != nil {
		return Hand{}, err
	}
	// Record the seat that actually holds the button
	ring := ActiveSeats(players)
	dealerSeat = ring[buttonPosition(ring, dealerSeat)]

	h := Hand{
		HandNumber:           handNumber,
		DealerSeat:           dealerSeat,
		SBSeat:               sbSeat,
		BBSeat:               bbSeat,
		Street:               Preflop,
		LastRaiseSize:        settings.BigBlind,
		ReopenAllowed:        true,
		ContribThisStreet:    newContributions(players),
		TotalContribThisHand: newContributions(players),
		ActionLog:            []ActionLogEntry{},
	}

	sbPaid, err := ApplyPayment(players, &h, players[playerIndexBySeat(players, sbSeat)].ID, settings.SmallBlind)
	if err != nil {
		return Hand{}, err
	}
	bbPaid, err := ApplyPayment(players, &h, players[playerIndexBySeat(players, bbSeat)].ID, settings.BigBlind)
	if err != nil {
		return Hand{}, err
	}
	h.CurrentBet = max(sbPaid, bbPaid)
	h.Pot = PotState{Main: sbPaid + bbPaid}

	// Both blinds all-in heads-up leaves nobody to act; the hand goes
	// straight to showdown from here.
	first, err := FirstToAct(players, Preflop, dealerSeat, bbSeat)
	if err != nil && !errors.Is(err, ErrNoActivePlayers) {
		return Hand{}, err
	}
	h.CurrentTurnPlayerID = first

	return h, nil
}

// StartNextHand settles seating for the next hand and deals it: funded
// players become ACTIVE, busted ones sit out as ALL_IN, and the button moves
// to the next active seat clockwise.
func StartNextHand(g *Game) (*Game, error) {
	if g.Hand.Street != Payout {
		return nil, ErrHandInProgress
	}

	next := g.Clone()
	normalizeForNewHand(next.Players)

	ring := ActiveSeats(next.Players)
	if len(ring) < 2 {
		return nil, ErrInsufficientPlayers
	}
	dealer := ring[0]
	for _, seat := range ring {
		if seat > g.Hand.DealerSeat {
			dealer = seat
			break
		}
	}

	hand, err := CreateHand(next.Settings, next.Players, dealer, g.Hand.HandNumber+1)
	if err != nil {
		return nil, err
	}
	next.Hand = hand
	return next, nil
}

func normalizeForNewHand(players []Player) {
	for i := range players {
		if players[i].Stack > 0 {
			players[i].State = StateActive
		} else {
			players[i].State = StateAllIn
		}
	}
}

// SettleShowdown distributes every pot to the declared winners, credits the
// stacks and moves the hand to PAYOUT. It is accepted at SHOWDOWN, or
// earlier when at most one player is left.
func SettleShowdown(g *Game, winners PotWinners) (*Game, error) {
	h := &g.Hand
	switch {
	case h.Street == Payout:
		return nil, ErrHandComplete
	case h.Street == Showdown:
	case remainingPlayers(g.Players, h) <= 1:
	default:
		return nil, ErrNotShowdown
	}

	next := g.Clone()
	if err := settle(next, winners); err != nil {
		return nil, err
	}
	return next, nil
}

// AwardUncontested gives every pot to the last player standing.
func AwardUncontested(g *Game) (*Game, error) {
	h := &g.Hand
	if h.Street == Payout {
		return nil, ErrHandComplete
	}

	var survivors []PlayerID
	for i := range g.Players {
		if h.inHand(&g.Players[i]) {
			survivors = append(survivors, g.Players[i].ID)
		}
	}
	switch {
	case len(survivors) == 0:
		return nil, ErrNoActivePlayers
	case len(survivors) > 1:
		return nil, fmt.Errorf("%w: %d players remain", ErrNotShowdown, len(survivors))
	}

	pot := RecalcPots(g.Players, h.TotalContribThisHand)
	winners := PotWinners{Main: survivors, Sides: make([][]PlayerID, len(pot.Sides))}
	for i := range winners.Sides {
		winners.Sides[i] = slices.Clone(survivors)
	}
	return SettleShowdown(g, winners)
}

func settle(g *Game, winners PotWinners) error {
	h := &g.Hand
	pot, breakdown := BuildBreakdown(g.Players, h)

	resolved, err := resolveWinners(g.Players, h, pot, winners)
	if err != nil {
		return err
	}
	payouts, err := Distribute(g.Players, h.DealerSeat, pot, resolved)
	if err != nil {
		return err
	}

	snap := h.snapshot()
	playersSnap := clonePlayers(g.Players)

	for i := range g.Players {
		g.Players[i].Stack += payouts[g.Players[i].ID]
	}
	h.Street = Payout
	h.Pot = PotState{}
	h.PayoutResult = &PayoutResult{
		DealerSeat: h.DealerSeat,
		Pot:        pot,
		Breakdown:  breakdown,
		Winners:    resolved,
		Payouts:    payouts,
	}
	h.appendLog(ActionLogEntry{
		Type:            EndHand,
		Street:          Payout,
		Snapshot:        snap,
		PlayersSnapshot: playersSnap,
	})
	return nil
}

// resolveWinners checks the declared winners against each pot and fills in
// pots that nobody is eligible for: those chips go with the pot below.
func resolveWinners(players []Player, h *Hand, pot PotState, winners PotWinners) (PotWinners, error) {
	if len(winners.Sides) > len(pot.Sides) {
		return PotWinners{}, fmt.Errorf("%w: %d side winner lists for %d side pots",
			ErrWinnerCount, len(winners.Sides), len(pot.Sides))
	}

	check := func(label string, amount int, eligible, ids []PlayerID) error {
		if amount <= 0 {
			return nil
		}
		if len(ids) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingWinner, label)
		}
		for _, id := range ids {
			if _, err := playerIndex(players, id); err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			if !slices.Contains(eligible, id) {
				return fmt.Errorf("%w: %s for %s", ErrIneligibleWinner, id, label)
			}
		}
		return nil
	}

	resolved := PotWinners{
		Main:  slices.Clone(winners.Main),
		Sides: make([][]PlayerID, len(pot.Sides)),
	}
	if err := check("main pot", pot.Main, mainPotEligible(players, h), resolved.Main); err != nil {
		return PotWinners{}, err
	}

	below := resolved.Main
	for i, side := range pot.Sides {
		ids := slices.Clone(winners.side(i))
		if side.Amount > 0 && len(side.EligiblePlayerIDs) == 0 {
			ids = slices.Clone(below)
		} else if err := check(fmt.Sprintf("side pot %d", i+1), side.Amount, side.EligiblePlayerIDs, ids); err != nil {
			return PotWinners{}, err
		}
		resolved.Sides[i] = ids
		below = ids
	}
	return resolved, nil
}
