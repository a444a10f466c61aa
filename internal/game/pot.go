package game

import (
	"fmt"
	"slices"
	"sort"
)

// SidePot is a pot layer restricted to the players who reached its tier
type SidePot struct {
	Amount            int        `json:"amount"`
	EligiblePlayerIDs []PlayerID `json:"eligiblePlayerIds"`
}

// PotState is the main pot plus side pots ordered from the lowest tier up
type PotState struct {
	Main  int       `json:"main"`
	Sides []SidePot `json:"sides"`
}

// Total returns the amount in all pots
func (ps PotState) Total() int {
	total := ps.Main
	for _, side := range ps.Sides {
		total += side.Amount
	}
	return total
}

func (ps PotState) clone() PotState {
	out := PotState{Main: ps.Main}
	if ps.Sides != nil {
		out.Sides = make([]SidePot, len(ps.Sides))
		for i, side := range ps.Sides {
			out.Sides[i] = SidePot{
				Amount:            side.Amount,
				EligiblePlayerIDs: slices.Clone(side.EligiblePlayerIDs),
			}
		}
	}
	return out
}

// PotBreakdown is a labelled view of one pot for display and winner
// selection. IDs are "main" and "side1", "side2", ... aligned with
// PotState.Sides.
type PotBreakdown struct {
	ID                string     `json:"id"`
	Label             string     `json:"label"`
	Amount            int        `json:"amount"`
	EligiblePlayerIDs []PlayerID `json:"eligiblePlayerIds"`
}

// RecalcPots partitions the hand's cumulative contributions into a main pot
// and side pots. Each distinct contribution level is a tier; a tier's layer
// is the increment over the previous tier times the number of contributors
// who reached it. Folded contributors fund layers but are never eligible.
func RecalcPots(players []Player, totalContrib Contributions) PotState {
	type contribution struct {
		player *Player
		amount int
	}

	var contributors []contribution
	for i := range players {
		if amount := totalContrib[players[i].ID]; amount > 0 {
			contributors = append(contributors, contribution{player: &players[i], amount: amount})
		}
	}
	if len(contributors) == 0 {
		return PotState{}
	}

	sorted := slices.Clone(contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].amount < sorted[j].amount
	})

	var pots []SidePot
	remaining := len(sorted)
	prev := 0
	for i := 0; i < len(sorted); {
		level := sorted[i].amount

		eligible := []PlayerID{}
		for _, c := range contributors {
			if c.amount >= level && c.player.State != StateFolded {
				eligible = append(eligible, c.player.ID)
			}
		}
		pots = append(pots, SidePot{
			Amount:            (level - prev) * remaining,
			EligiblePlayerIDs: eligible,
		})

		// Skip to next distinct level
		j := i
		for j < len(sorted) && sorted[j].amount == level {
			j++
		}
		remaining -= j - i
		prev = level
		i = j
	}

	state := PotState{Main: pots[0].Amount}
	if len(pots) > 1 {
		state.Sides = pots[1:]
	}
	return state
}

// mainPotEligible lists contributors still in the hand. Every contributor
// reaches the lowest tier, so this is the main pot's eligible set.
func mainPotEligible(players []Player, h *Hand) []PlayerID {
	eligible := []PlayerID{}
	for _, idx := range bySeat(players) {
		p := &players[idx]
		if h.TotalContribThisHand[p.ID] > 0 && p.State != StateFolded {
			eligible = append(eligible, p.ID)
		}
	}
	if len(eligible) == 0 {
		for _, idx := range bySeat(players) {
			if players[idx].State != StateFolded {
				eligible = append(eligible, players[idx].ID)
			}
		}
	}
	return eligible
}

// BuildBreakdown recomputes the hand's pots and labels them. Empty side pots
// and side pots nobody can win are left out of the breakdown but keep their
// position in the returned PotState.
func BuildBreakdown(players []Player, h *Hand) (PotState, []PotBreakdown) {
	state := RecalcPots(players, h.TotalContribThisHand)

	var breakdown []PotBreakdown
	if state.Main > 0 {
		breakdown = append(breakdown, PotBreakdown{
			ID:                "main",
			Label:             "Main pot",
			Amount:            state.Main,
			EligiblePlayerIDs: mainPotEligible(players, h),
		})
	}
	for i, side := range state.Sides {
		if side.Amount <= 0 || len(side.EligiblePlayerIDs) == 0 {
			continue
		}
		breakdown = append(breakdown, PotBreakdown{
			ID:                sidePotID(i),
			Label:             fmt.Sprintf("Side pot %d", i+1),
			Amount:            side.Amount,
			EligiblePlayerIDs: slices.Clone(side.EligiblePlayerIDs),
		})
	}
	return state, breakdown
}

func sidePotID(i int) string {
	return fmt.Sprintf("side%d", i+1)
}

// WinnersFromSelection converts a per-pot selection keyed by breakdown id
// into index-aligned PotWinners. sideCount is len(PotState.Sides).
func WinnersFromSelection(sideCount int, selection map[string][]PlayerID) PotWinners {
	winners := PotWinners{
		Main:  slices.Clone(selection["main"]),
		Sides: make([][]PlayerID, sideCount),
	}
	for i := range sideCount {
		winners.Sides[i] = slices.Clone(selection[sidePotID(i)])
	}
	return winners
}
