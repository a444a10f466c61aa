package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameWith(players []Player, h Hand) *Game {
	return &Game{Settings: testSettings, Players: players, Hand: h}
}

func TestLegalActions(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 1000, 1000, 1000)

	// Under the gun faces the big blind
	assert.Equal(t, []ActionKind{Call, Raise, Fold, AllIn}, LegalActions(g.Players, &g.Hand))

	g = mustApply(t, g, NewAction(Call))
	g = mustApply(t, g, NewAction(Call))

	// Big blind option: nothing to call but the blind can still be raised
	require.Equal(t, pid(2), g.Hand.CurrentTurnPlayerID)
	assert.Equal(t, []ActionKind{Check, Raise, Fold, AllIn}, LegalActions(g.Players, &g.Hand))

	g = mustApply(t, g, NewAction(Check))
	g = mustAdvance(t, g)

	// Unopened flop
	assert.Equal(t, []ActionKind{Check, Bet, Fold, AllIn}, LegalActions(g.Players, &g.Hand))
}

func TestLegalActionsInactivePlayer(t *testing.T) {
	t.Parallel()

	players := seatPlayers(0, 1000)
	players[0].State = StateAllIn
	h := streetHand(Flop, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0})

	assert.Nil(t, LegalActions(players, &h))

	h.CurrentTurnPlayerID = "ghost"
	assert.Nil(t, LegalActions(players, &h))
}

func TestApplyCallRecordsEntry(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 1000, 1000, 1000)

	next, entry, err := Apply(g, NewAction(Call))
	require.NoError(t, err)

	assert.Equal(t, 1, entry.Seq)
	assert.Equal(t, Call, entry.Type)
	assert.Equal(t, pid(0), entry.PlayerID)
	require.NotNil(t, entry.Amount)
	assert.Equal(t, 100, *entry.Amount)
	assert.Equal(t, Preflop, entry.Street)

	// The entry snapshots the state it was applied to
	assert.Equal(t, g.Hand.snapshot(), entry.Snapshot)
	assert.Equal(t, g.Players, entry.PlayersSnapshot)
	require.Len(t, next.Hand.ActionLog, 1)
	assert.Equal(t, entry, next.Hand.ActionLog[0])

	assert.Equal(t, 900, stackOf(t, next, pid(0)))
	assert.Equal(t, 250, next.Hand.Pot.Main)
	assert.Equal(t, pid(1), next.Hand.CurrentTurnPlayerID)

	// The input game is untouched
	assert.Equal(t, 1000, stackOf(t, g, pid(0)))
	assert.Empty(t, g.Hand.ActionLog)
}

func TestApplyFold(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 1000, 1000, 1000)

	next, entry, err := Apply(g, NewAction(Fold))
	require.NoError(t, err)
	assert.Nil(t, entry.Amount)
	assert.Equal(t, StateFolded, stateOf(t, next, pid(0)))
	assert.Equal(t, pid(1), next.Hand.CurrentTurnPlayerID)
	assert.Equal(t, 150, next.Hand.Pot.Total())
}

func TestApplyRejections(t *testing.T) {
	t.Parallel()

	unopened := func() *Game {
		return gameWith(seatPlayers(900, 900, 60),
			streetHand(Flop, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0, pid(2): 0}))
	}
	facingBet := func() *Game {
		return gameWith(seatPlayers(800, 900, 60),
			streetHand(Flop, 100, 100, pid(1), Contributions{pid(0): 100, pid(1): 0, pid(2): 0}))
	}
	shortStackTurn := func() *Game {
		g := facingBet()
		g.Hand.CurrentTurnPlayerID = pid(2)
		return g
	}
	// 700 behind against a bet of 800
	deepBet := func() *Game {
		return gameWith(seatPlayers(100, 700, 900),
			streetHand(Flop, 800, 800, pid(1), Contributions{pid(0): 800, pid(1): 0, pid(2): 0}))
	}
	allInTurn := func() *Game {
		g := unopened()
		g.Players[0].Stack = 0
		g.Players[0].State = StateAllIn
		return g
	}

	tests := []struct {
		name   string
		game   func() *Game
		action Action
		want   error
	}{
		{"call with nothing to call", unopened, NewAction(Call), ErrNothingToCall},
		{"raise with no bet", unopened, RaiseTo(200), ErrNoBetToRaise},
		{"bet below minimum", unopened, BetTo(50), ErrBetBelowMinimum},
		{"bet of zero", unopened, BetTo(0), ErrRaiseBelowCurrentBet},
		{"bet beyond stack", unopened, BetTo(901), ErrExceedsStack},
		{"check facing a bet", facingBet, NewAction(Check), ErrCallRequired},
		{"bet facing a bet", facingBet, BetTo(300), ErrNotBettable},
		{"raise below minimum", facingBet, RaiseTo(150), ErrRaiseBelowMinimum},
		{"raise not above current bet", facingBet, RaiseTo(100), ErrRaiseBelowCurrentBet},
		{"raise beyond stack", facingBet, RaiseTo(1000), ErrExceedsStack},
		{"short stack raise below the bet", shortStackTurn, RaiseTo(60), ErrRaiseBelowCurrentBet},
		{"short stack raise beyond stack", shortStackTurn, RaiseTo(101), ErrExceedsStack},
		{"deep bet outruns the stack", deepBet, RaiseTo(500), ErrRaiseBelowCurrentBet},
		{"deep bet raise beyond stack", deepBet, RaiseTo(900), ErrExceedsStack},
		{"all-in player checks", allInTurn, NewAction(Check), ErrPlayerNotActive},
		{"all-in player folds", allInTurn, NewAction(Fold), ErrInvalidFoldState},
		{"system action", unopened, NewAction(ActionAdvanceStreet), ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := tt.game()
			before := g.Clone()

			next, _, err := Apply(g, tt.action)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, next)
			assert.Equal(t, before, g, "rejected action must not change state")
		})
	}
}

func TestApplyActiveWithoutChips(t *testing.T) {
	t.Parallel()

	players := seatPlayers(0, 1000)
	h := streetHand(Flop, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0})

	_, _, err := Apply(gameWith(players, h), NewAction(AllIn))
	require.ErrorIs(t, err, ErrNoChipsToAllIn)
}

func TestApplyAfterHandComplete(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 1000, 1000)
	g.Hand.Street = Showdown

	_, _, err := Apply(g, NewAction(Check))
	require.ErrorIs(t, err, ErrHandComplete)
}

func TestBetAndRaise(t *testing.T) {
	t.Parallel()

	g := gameWith(seatPlayers(900, 900, 60),
		streetHand(Flop, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0, pid(2): 0}))

	next, entry, err := Apply(g, BetTo(100))
	require.NoError(t, err)
	assert.Equal(t, 100, *entry.Amount)
	assert.Equal(t, 100, next.Hand.CurrentBet)
	assert.Equal(t, 100, next.Hand.LastRaiseSize)
	assert.True(t, next.Hand.ReopenAllowed)
	assert.Equal(t, pid(1), next.Hand.CurrentTurnPlayerID)

	next, entry, err = Apply(next, RaiseTo(500))
	require.NoError(t, err)
	assert.Equal(t, 500, *entry.Amount)
	assert.Equal(t, 500, next.Hand.CurrentBet)
	assert.Equal(t, 400, next.Hand.LastRaiseSize)
	assert.Equal(t, 400, stackOf(t, next, pid(1)))

	to, ok := MinRaiseTo(&next.Hand)
	require.True(t, ok)
	assert.Equal(t, 900, to)

	// The short stack can only call for less
	next, entry, err = Apply(next, NewAction(Call))
	require.NoError(t, err)
	assert.Equal(t, 60, *entry.Amount)
	assert.Equal(t, StateAllIn, stateOf(t, next, pid(2)))
	assert.Equal(t, 500, next.Hand.CurrentBet)
	assert.Equal(t, pid(0), next.Hand.CurrentTurnPlayerID)

	// An all-in contributor splits the pot into tiers
	assert.Equal(t, 180, next.Hand.Pot.Main)
	require.Len(t, next.Hand.Pot.Sides, 2)
	assert.Equal(t, SidePot{Amount: 80, EligiblePlayerIDs: []PlayerID{pid(0), pid(1)}}, next.Hand.Pot.Sides[0])
	assert.Equal(t, SidePot{Amount: 400, EligiblePlayerIDs: []PlayerID{pid(1)}}, next.Hand.Pot.Sides[1])
	assert.Equal(t, 660, next.Hand.Pot.Total())
	require.NoError(t, next.Validate())
}

func TestAllInBetBelowMinimum(t *testing.T) {
	t.Parallel()

	g := gameWith(seatPlayers(900, 900, 60),
		streetHand(Flop, 0, 100, pid(2), Contributions{pid(0): 0, pid(1): 0, pid(2): 0}))

	next, _, err := Apply(g, BetTo(60))
	require.NoError(t, err)
	assert.Equal(t, 60, next.Hand.CurrentBet)
	assert.Equal(t, 60, next.Hand.LastRaiseSize)
	assert.Equal(t, StateAllIn, stateOf(t, next, pid(2)))
	assert.Equal(t, pid(0), next.Hand.CurrentTurnPlayerID)
}

func TestShortRaiseToDoesNotReopen(t *testing.T) {
	t.Parallel()

	g := gameWith(seatPlayers(1000, 150),
		streetHand(Flop, 100, 100, pid(1), Contributions{pid(0): 100, pid(1): 0}))

	next, _, err := Apply(g, RaiseTo(150))
	require.NoError(t, err)
	assert.Equal(t, 150, next.Hand.CurrentBet)
	assert.Equal(t, 100, next.Hand.LastRaiseSize)
	assert.False(t, next.Hand.ReopenAllowed)
	assert.Equal(t, StateAllIn, stateOf(t, next, pid(1)))

	assert.Equal(t, []ActionKind{Call, Fold, AllIn}, LegalActions(next.Players, &next.Hand))
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	t.Parallel()

	// A and B have 2000 behind, C has 200 and has already matched 800
	g := gameWith(seatPlayers(2000, 2000, 200),
		streetHand(Flop, 800, 400, pid(2), Contributions{pid(0): 800, pid(1): 800, pid(2): 800}))

	next, entry, err := Apply(g, NewAction(AllIn))
	require.NoError(t, err)
	assert.Equal(t, 1000, *entry.Amount)
	assert.Equal(t, 1000, next.Hand.CurrentBet)
	assert.Equal(t, 400, next.Hand.LastRaiseSize)
	assert.False(t, next.Hand.ReopenAllowed)
	assert.Equal(t, pid(0), next.Hand.CurrentTurnPlayerID)

	assert.Equal(t, []ActionKind{Call, Fold, AllIn}, LegalActions(next.Players, &next.Hand))

	_, _, err = Apply(next, RaiseTo(1400))
	require.ErrorIs(t, err, ErrRaiseNotAllowed)
	require.ErrorIs(t, err, ErrReopenClosed)
}

func TestAllIn(t *testing.T) {
	t.Parallel()

	t.Run("opens an unbet street", func(t *testing.T) {
		t.Parallel()

		g := gameWith(seatPlayers(400, 1000),
			streetHand(Flop, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0}))

		next := mustApply(t, g, NewAction(AllIn))
		assert.Equal(t, 400, next.Hand.CurrentBet)
		assert.Equal(t, 400, next.Hand.LastRaiseSize)
		assert.True(t, next.Hand.ReopenAllowed)
	})

	t.Run("full raise reopens", func(t *testing.T) {
		t.Parallel()

		g := gameWith(seatPlayers(1000, 400),
			streetHand(Flop, 100, 100, pid(1), Contributions{pid(0): 100, pid(1): 0}))

		next := mustApply(t, g, NewAction(AllIn))
		assert.Equal(t, 400, next.Hand.CurrentBet)
		assert.Equal(t, 300, next.Hand.LastRaiseSize)
		assert.True(t, next.Hand.ReopenAllowed)
	})

	t.Run("call for less leaves the bet alone", func(t *testing.T) {
		t.Parallel()

		g := gameWith(seatPlayers(1000, 200),
			streetHand(Flop, 500, 500, pid(1), Contributions{pid(0): 500, pid(1): 0}))

		next, entry, err := Apply(g, NewAction(AllIn))
		require.NoError(t, err)
		assert.Equal(t, 200, *entry.Amount)
		assert.Equal(t, 500, next.Hand.CurrentBet)
		assert.Equal(t, 500, next.Hand.LastRaiseSize)
		assert.True(t, next.Hand.ReopenAllowed)
		assert.Equal(t, StateAllIn, stateOf(t, next, pid(1)))
	})
}

func TestTurnSkipsFoldedAndAllIn(t *testing.T) {
	t.Parallel()

	players := seatPlayers(1000, 0, 1000, 1000)
	players[1].State = StateAllIn
	players[2].State = StateFolded
	h := streetHand(Turn, 0, 100, pid(0), Contributions{pid(0): 0, pid(1): 0, pid(2): 0, pid(3): 0})

	next := mustApply(t, gameWith(players, h), NewAction(Check))
	assert.Equal(t, pid(3), next.Hand.CurrentTurnPlayerID)

	next = mustApply(t, next, NewAction(Check))
	assert.Equal(t, pid(0), next.Hand.CurrentTurnPlayerID)
}
