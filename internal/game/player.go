package game

import (
	"fmt"
	"sort"
)

// PlayerID identifies a seated player for the whole session.
type PlayerID string

// PlayerState is a player's standing within the current hand
type PlayerState int

const (
	StateActive PlayerState = iota
	StateFolded
	StateAllIn
)

var playerStateNames = []string{"ACTIVE", "FOLDED", "ALL_IN"}

func (s PlayerState) String() string {
	if s < 0 || int(s) >= len(playerStateNames) {
		return fmt.Sprintf("PlayerState(%d)", int(s))
	}
	return playerStateNames[s]
}

func (s PlayerState) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(playerStateNames) {
		return nil, fmt.Errorf("invalid player state %d", int(s))
	}
	return []byte(playerStateNames[s]), nil
}

func (s *PlayerState) UnmarshalText(text []byte) error {
	v, err := parseEnum[PlayerState](playerStateNames, "player state", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Player represents a seated player
type Player struct {
	ID    PlayerID    `json:"id"`
	Name  string      `json:"name"`
	Seat  int         `json:"seatIndex"` // clockwise
	Stack int         `json:"stack"`
	State PlayerState `json:"state"`
}

// IsActive returns true if the player can still act
func (p *Player) IsActive() bool {
	return p.State == StateActive
}

// PlayerSetup is the caller-supplied description of one seat. Seats are
// assigned by list position.
type PlayerSetup struct {
	ID    PlayerID
	Name  string
	Stack int
}

func clonePlayers(players []Player) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	copy(out, players)
	return out
}

func playerIndex(players []Player, id PlayerID) (int, error) {
	for i := range players {
		if players[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
}

func playerIndexBySeat(players []Player, seat int) int {
	for i := range players {
		if players[i].Seat == seat {
			return i
		}
	}
	return -1
}

// bySeat returns player indices ordered clockwise by seat.
func bySeat(players []Player) []int {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return players[order[a]].Seat < players[order[b]].Seat
	})
	return order
}

func parseEnum[T ~int](names []string, kind string, text []byte) (T, error) {
	for i, name := range names {
		if name == string(text) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q", kind, string(text))
}
