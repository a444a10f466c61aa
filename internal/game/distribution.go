package game

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// PotWinners names the winners of each pot. Sides is index-aligned with
// PotState.Sides.
type PotWinners struct {
	Main  []PlayerID   `json:"main"`
	Sides [][]PlayerID `json:"sides"`
}

func (w PotWinners) clone() PotWinners {
	out := PotWinners{Main: slices.Clone(w.Main)}
	if w.Sides != nil {
		out.Sides = make([][]PlayerID, len(w.Sides))
		for i, ids := range w.Sides {
			out.Sides[i] = slices.Clone(ids)
		}
	}
	return out
}

// side returns the winners declared for side pot i, if any.
func (w PotWinners) side(i int) []PlayerID {
	if i < len(w.Sides) {
		return w.Sides[i]
	}
	return nil
}

// PayoutResult freezes a settled hand: the pots as they were distributed,
// who won them and what each player received.
type PayoutResult struct {
	DealerSeat int              `json:"dealerIndex"`
	Pot        PotState         `json:"pot"`
	Breakdown  []PotBreakdown   `json:"breakdown"`
	Winners    PotWinners       `json:"winners"`
	Payouts    map[PlayerID]int `json:"payouts"`
}

func (pr PayoutResult) clone() PayoutResult {
	out := PayoutResult{
		DealerSeat: pr.DealerSeat,
		Pot:        pr.Pot.clone(),
		Winners:    pr.Winners.clone(),
		Payouts:    maps.Clone(pr.Payouts),
	}
	if pr.Breakdown != nil {
		out.Breakdown = make([]PotBreakdown, len(pr.Breakdown))
		for i, b := range pr.Breakdown {
			b.EligiblePlayerIDs = slices.Clone(b.EligiblePlayerIDs)
			out.Breakdown[i] = b
		}
	}
	return out
}

// sortByButtonProximity orders winners by clockwise distance from the dealer,
// nearest first. A winner may only be named once per pot.
func sortByButtonProximity(players []Player, dealerSeat int, winnerIDs []PlayerID) ([]PlayerID, error) {
	n := len(players)
	distance := make(map[PlayerID]int, len(winnerIDs))
	sorted := make([]PlayerID, 0, len(winnerIDs))
	for _, id := range winnerIDs {
		if _, seen := distance[id]; seen {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		idx, err := playerIndex(players, id)
		if err != nil {
			return nil, err
		}
		distance[id] = ((players[idx].Seat-dealerSeat)%n + n) % n
		sorted = append(sorted, id)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return distance[sorted[i]] < distance[sorted[j]]
	})
	return sorted, nil
}

// ShareFor splits amount among winners. Each gets an equal floor share and
// the odd chips go one at a time to the winners nearest the button,
// clockwise.
func ShareFor(players []Player, dealerSeat, amount int, winnerIDs []PlayerID) (map[PlayerID]int, error) {
	shares := make(map[PlayerID]int)
	if len(winnerIDs) == 0 || amount <= 0 {
		return shares, nil
	}

	sorted, err := sortByButtonProximity(players, dealerSeat, winnerIDs)
	if err != nil {
		return nil, err
	}

	base := amount / len(sorted)
	remainder := amount % len(sorted)
	for i, id := range sorted {
		share := base
		if i < remainder {
			share++
		}
		shares[id] = share
	}
	return shares, nil
}

// Distribute splits the main pot and each side pot among their own winners
// and sums the shares per player.
func Distribute(players []Player, dealerSeat int, pot PotState, winners PotWinners) (map[PlayerID]int, error) {
	payouts := make(map[PlayerID]int)

	add := func(label string, amount int, ids []PlayerID) error {
		shares, err := ShareFor(players, dealerSeat, amount, ids)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		for id, v := range shares {
			payouts[id] += v
		}
		return nil
	}

	if err := add("main pot", pot.Main, winners.Main); err != nil {
		return nil, err
	}
	for i, side := range pot.Sides {
		if err := add(fmt.Sprintf("side pot %d", i+1), side.Amount, winners.side(i)); err != nil {
			return nil, err
		}
	}
	return payouts, nil
}
