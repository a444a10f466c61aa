package phh

import (
	"fmt"
	"sort"
	"time"

	"github.com/lox/pokerdealer/internal/game"
)

// FromGame builds the history of the game's current hand. Players who sat
// the hand out are left off. Finishing stacks and winnings are only filled in
// once the hand has been paid out.
func FromGame(g *game.Game, handID string, ts time.Time) (*HandHistory, error) {
	h := &g.Hand
	dealt := dealtPlayers(g)
	if len(dealt) < 2 {
		return nil, fmt.Errorf("phh: hand %d has %d players", h.HandNumber, len(dealt))
	}

	var payouts map[game.PlayerID]int
	if h.PayoutResult != nil {
		payouts = h.PayoutResult.Payouts
	}

	hist := &HandHistory{
		Variant:   "NT",
		SeatCount: len(g.Players),
		MinBet:    g.Settings.BigBlind,
		HandID:    handID,
		Metadata: map[string]any{
			"hand_number": h.HandNumber,
			"dealer_seat": h.DealerSeat + 1,
			"street":      h.Street.String(),
		},
	}
	if !ts.IsZero() {
		hist.Time = ts.Format("15:04:05")
		hist.TimeZone = ts.Location().String()
		hist.Day = ts.Day()
		hist.Month = int(ts.Month())
		hist.Year = ts.Year()
	}

	names := make(map[game.PlayerID]string, len(dealt))
	for i, p := range dealt {
		names[p.ID] = fmt.Sprintf("p%d", i+1)

		won := payouts[p.ID]
		starting := p.Stack - won + h.TotalContribThisHand[p.ID]

		// A short stack posts what it has
		blind := 0
		switch p.Seat {
		case h.SBSeat:
			blind = min(g.Settings.SmallBlind, starting)
		case h.BBSeat:
			blind = min(g.Settings.BigBlind, starting)
		}

		hist.Seats = append(hist.Seats, p.Seat+1)
		hist.Players = append(hist.Players, p.Name)
		hist.Antes = append(hist.Antes, 0)
		hist.BlindsOrStraddles = append(hist.BlindsOrStraddles, blind)
		hist.StartingStacks = append(hist.StartingStacks, starting)
		if h.Street == game.Payout {
			hist.FinishingStacks = append(hist.FinishingStacks, p.Stack)
			hist.Winnings = append(hist.Winnings, won)
		}
	}

	for _, p := range dealt {
		hist.Actions = append(hist.Actions, fmt.Sprintf("d dh %s ????", names[p.ID]))
	}
	for _, entry := range h.ActionLog {
		if line, ok := formatEntry(entry, names[entry.PlayerID]); ok {
			hist.Actions = append(hist.Actions, line)
		}
	}
	return hist, nil
}

// dealtPlayers returns the players dealt into the hand, clockwise from the
// small blind.
func dealtPlayers(g *game.Game) []game.Player {
	h := &g.Hand
	var dealt []game.Player
	for _, p := range g.Players {
		if p.State == game.StateActive || h.TotalContribThisHand[p.ID] > 0 || p.State == game.StateFolded {
			dealt = append(dealt, p)
		}
	}

	n := len(g.Players)
	offset := func(seat int) int {
		return ((seat-h.SBSeat)%n + n) % n
	}
	sort.SliceStable(dealt, func(i, j int) bool {
		return offset(dealt[i].Seat) < offset(dealt[j].Seat)
	})
	return dealt
}
