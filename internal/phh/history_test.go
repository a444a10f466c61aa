package phh

import (
	"strings"
	"testing"
	"time"

	"github.com/lox/pokerdealer/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playHand(t *testing.T) *game.Game {
	t.Helper()

	g, err := game.NewGame(game.Settings{SmallBlind: 50, BigBlind: 100}, []game.PlayerSetup{
		{ID: "alice", Name: "Alice", Stack: 1000},
		{ID: "bob", Name: "Bob", Stack: 1000},
		{ID: "carol", Name: "Carol", Stack: 1000},
	})
	require.NoError(t, err)

	apply := func(a game.Action) {
		t.Helper()
		g, _, err = game.Apply(g, a)
		require.NoError(t, err)
	}

	apply(game.RaiseTo(300))
	apply(game.NewAction(game.Fold))
	apply(game.NewAction(game.Call))
	g, _, err = game.AdvanceStreet(g)
	require.NoError(t, err)
	apply(game.NewAction(game.Check))
	apply(game.BetTo(200))
	apply(game.NewAction(game.AllIn))
	apply(game.NewAction(game.Call))
	g, _, err = game.GoToShowdown(g)
	require.NoError(t, err)
	g, err = game.SettleShowdown(g, game.PotWinners{
		Main:  []game.PlayerID{"carol"},
		Sides: [][]game.PlayerID{{"carol"}},
	})
	require.NoError(t, err)
	return g
}

func TestFromGame(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC)
	hist, err := FromGame(playHand(t), "0001", ts)
	require.NoError(t, err)

	// Listed from the small blind: Bob, Carol, then Alice on the button
	assert.Equal(t, []string{"Bob", "Carol", "Alice"}, hist.Players)
	assert.Equal(t, []int{2, 3, 1}, hist.Seats)
	assert.Equal(t, []int{50, 100, 0}, hist.BlindsOrStraddles)
	assert.Equal(t, []int{0, 0, 0}, hist.Antes)
	assert.Equal(t, []int{1000, 1000, 1000}, hist.StartingStacks)
	assert.Equal(t, []int{950, 2050, 0}, hist.FinishingStacks)
	assert.Equal(t, []int{0, 2050, 0}, hist.Winnings)
	assert.Equal(t, 100, hist.MinBet)

	assert.Equal(t, []string{
		"d dh p1 ????",
		"d dh p2 ????",
		"d dh p3 ????",
		"p3 cbr 300",
		"p1 f",
		"p2 cc",
		"# flop",
		"p2 cc",
		"p3 cbr 200",
		"p2 cbr 700",
		"p3 cc",
		"# showdown",
	}, hist.Actions)

	assert.Equal(t, "15:22:00", hist.Time)
	assert.Equal(t, "UTC", hist.TimeZone)
	assert.Equal(t, 2025, hist.Year)
}

func TestFromGameInProgress(t *testing.T) {
	t.Parallel()

	g, err := game.NewGame(game.Settings{SmallBlind: 5, BigBlind: 10}, []game.PlayerSetup{
		{ID: "a", Name: "A", Stack: 200},
		{ID: "b", Name: "B", Stack: 200},
	})
	require.NoError(t, err)

	hist, err := FromGame(g, "hand-1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []int{200, 200}, hist.StartingStacks)
	assert.Nil(t, hist.FinishingStacks)
	assert.Nil(t, hist.Winnings)
	assert.Empty(t, hist.Time)
}

func TestFromGameShortBlind(t *testing.T) {
	t.Parallel()

	g, err := game.NewGame(game.Settings{SmallBlind: 50, BigBlind: 100}, []game.PlayerSetup{
		{ID: "a", Name: "A", Stack: 1000},
		{ID: "b", Name: "B", Stack: 30},
		{ID: "c", Name: "C", Stack: 60},
	})
	require.NoError(t, err)

	hist, err := FromGame(g, "short", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, hist.Players)
	assert.Equal(t, []int{30, 60, 1000}, hist.StartingStacks)
	assert.Equal(t, []int{30, 60, 0}, hist.BlindsOrStraddles)
}

func TestFormatEntryAllInCall(t *testing.T) {
	t.Parallel()

	amount := 150
	entry := game.ActionLogEntry{
		Type:     game.AllIn,
		PlayerID: "a",
		Amount:   &amount,
		Snapshot: &game.Hand{CurrentBet: 400},
	}

	line, ok := formatEntry(entry, "p2")
	require.True(t, ok)
	assert.Equal(t, "p2 cc", line)

	_, ok = formatEntry(game.ActionLogEntry{Type: game.EndHand}, "")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	hist, err := FromGame(playHand(t), "0001", time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))
	require.NoError(t, err)

	data, err := EncodeToBytes(hist)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "variant = \"NT\"\n"))
	assert.Contains(t, out, "blinds_or_straddles = [50, 100, 0]\n")
	assert.Contains(t, out, "hand = \"0001\"\n")
	assert.Contains(t, out, "[metadata]")

	require.Error(t, Encode(&strings.Builder{}, nil))
}
