package game

// RoundingButtonNear hands odd chips to the winners nearest the button,
// clockwise. It is the only rounding rule.
const RoundingButtonNear = "BUTTON_NEAR"

// Settings are the table-wide parameters for every hand
type Settings struct {
	SmallBlind   int    `json:"sb"`
	BigBlind     int    `json:"bb"`
	RoundingRule string `json:"roundingRule"`
	BurnCard     bool   `json:"burnCard"` // display only
}

// Game is everything the engine needs: settings, the roster and the hand in
// progress. It is also the persisted snapshot.
type Game struct {
	Settings Settings `json:"settings"`
	Players  []Player `json:"players"`
	Hand     Hand     `json:"hand"`
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	return &Game{
		Settings: g.Settings,
		Players:  clonePlayers(g.Players),
		Hand:     g.Hand.Clone(),
	}
}

// Player looks up a seated player by id.
func (g *Game) Player(id PlayerID) (Player, error) {
	idx, err := playerIndex(g.Players, id)
	if err != nil {
		return Player{}, err
	}
	return g.Players[idx], nil
}

// TurnPlayer returns the player whose turn it is. ok is false once the hand
// has no one left to act.
func (g *Game) TurnPlayer() (Player, bool) {
	idx, err := playerIndex(g.Players, g.Hand.CurrentTurnPlayerID)
	if err != nil {
		return Player{}, false
	}
	return g.Players[idx], true
}

// ChipsInPlay returns the chips in stacks plus every pot. It never changes
// within a hand or across the payout.
func ChipsInPlay(g *Game) int {
	total := g.Hand.Pot.Total()
	for _, p := range g.Players {
		total += p.Stack
	}
	return total
}
