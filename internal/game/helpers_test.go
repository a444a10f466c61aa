package game

import (
	"fmt"
	"maps"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSettings = Settings{SmallBlind: 50, BigBlind: 100, RoundingRule: RoundingButtonNear}

// newTestGame seats p0, p1, ... with the given stacks and deals hand 1.
func newTestGame(t *testing.T, stacks ...int) *Game {
	t.Helper()
	setups := make([]PlayerSetup, len(stacks))
	for i, stack := range stacks {
		setups[i] = PlayerSetup{ID: pid(i), Name: fmt.Sprintf("Player %d", i), Stack: stack}
	}
	g, err := NewGame(testSettings, setups)
	require.NoError(t, err)
	return g
}

func pid(seat int) PlayerID {
	return PlayerID(fmt.Sprintf("p%d", seat))
}

// seatPlayers builds a roster with the given stacks, all ACTIVE.
func seatPlayers(stacks ...int) []Player {
	players := make([]Player, len(stacks))
	for i, stack := range stacks {
		players[i] = Player{ID: pid(i), Name: fmt.Sprintf("Player %d", i), Seat: i, Stack: stack}
	}
	return players
}

// streetHand builds a mid-street hand whose contributions so far all happened
// on this street.
func streetHand(street Street, currentBet, lastRaise int, turn PlayerID, contrib Contributions) Hand {
	return Hand{
		HandNumber:           1,
		Street:               street,
		CurrentTurnPlayerID:  turn,
		CurrentBet:           currentBet,
		LastRaiseSize:        lastRaise,
		ReopenAllowed:        true,
		ContribThisStreet:    contrib,
		TotalContribThisHand: maps.Clone(contrib),
		Pot:                  PotState{Main: contrib.Total()},
		ActionLog:            []ActionLogEntry{},
	}
}

func mustApply(t *testing.T, g *Game, a Action) *Game {
	t.Helper()
	next, _, err := Apply(g, a)
	require.NoError(t, err, "applying %s for %s", a, g.Hand.CurrentTurnPlayerID)
	requireConserved(t, g, next)
	return next
}

func mustAdvance(t *testing.T, g *Game) *Game {
	t.Helper()
	next, _, err := AdvanceStreet(g)
	require.NoError(t, err)
	requireConserved(t, g, next)
	return next
}

func requireConserved(t *testing.T, before, after *Game) {
	t.Helper()
	require.Equal(t, ChipsInPlay(before), ChipsInPlay(after), "chips not conserved")
}

func stackOf(t *testing.T, g *Game, id PlayerID) int {
	t.Helper()
	p, err := g.Player(id)
	require.NoError(t, err)
	return p.Stack
}

func stateOf(t *testing.T, g *Game, id PlayerID) PlayerState {
	t.Helper()
	p, err := g.Player(id)
	require.NoError(t, err)
	return p.State
}
