package game

// HandEnd says how a finished hand is resolved
type HandEnd int

const (
	// HandEndPayout: at most one player is left, the pot is uncontested.
	HandEndPayout HandEnd = iota
	// HandEndShowdown: the river round closed with two or more players left.
	HandEndShowdown
)

func (e HandEnd) String() string {
	return [...]string{"PAYOUT", "SHOWDOWN"}[e]
}

// DetectHandEnd decides whether the hand is over. A lone remaining player
// wins outright even mid-street; otherwise the hand reaches showdown once the
// river round is complete.
func DetectHandEnd(players []Player, h *Hand) (HandEnd, bool) {
	if remainingPlayers(players, h) <= 1 {
		return HandEndPayout, true
	}
	if h.Street == River && IsRoundComplete(players, h) {
		return HandEndShowdown, true
	}
	return 0, false
}

// remainingPlayers counts players with a claim on the pot.
func remainingPlayers(players []Player, h *Hand) int {
	n := 0
	for i := range players {
		if h.inHand(&players[i]) {
			n++
		}
	}
	return n
}
