// Package game implements the no-limit hold'em hand engine: seating and
// blinds, betting, street transitions, side pots and pot distribution.
//
// The main type is Game, which bundles the table Settings, the seated Players
// and the Hand in progress. Cards and hand ranking are not modelled; the
// engine is told who won each pot, not why.
//
// # Basic Usage
//
// Create a game and play an action:
//
//	g, err := game.NewGame(game.Settings{SmallBlind: 50, BigBlind: 100}, []game.PlayerSetup{
//	    {ID: "a", Name: "Alice", Stack: 10000},
//	    {ID: "b", Name: "Bob", Stack: 10000},
//	    {ID: "c", Name: "Carol", Stack: 10000},
//	})
//	g, entry, err := game.Apply(g, game.RaiseTo(300))
//
// After each action, check whether the round or the hand is over:
//
//	if end, ok := game.DetectHandEnd(g.Players, &g.Hand); ok { ... }
//	if game.IsRoundComplete(g.Players, &g.Hand) {
//	    g, _, err = game.AdvanceStreet(g)
//	}
//
// At showdown the caller supplies the winners of every pot:
//
//	g, err = game.SettleShowdown(g, game.PotWinners{Main: []game.PlayerID{"a"}})
//	g, err = game.StartNextHand(g)
//
// # State transitions
//
// Every exported transition (Apply, AdvanceStreet, GoToShowdown,
// SettleShowdown, StartNextHand, Undo) takes a *Game and returns a new one.
// The input is never modified, so a rejected action leaves the caller holding
// the state it had. Each log entry keeps a snapshot of the hand (and, where
// it changed, the players) from just before it was applied, which is all
// Undo needs.
//
// The engine holds no global state and does no locking; a single owner must
// serialise the transitions for a given game.
package game
