package game

import (
	"fmt"
	"maps"
)

// Contributions maps every seated player to the chips they have put in.
// Hands build these with an entry per player so that a missing key means an
// unknown id, never an implicit zero.
type Contributions map[PlayerID]int

func newContributions(players []Player) Contributions {
	c := make(Contributions, len(players))
	for _, p := range players {
		c[p.ID] = 0
	}
	return c
}

// Total returns the sum of all contributions
func (c Contributions) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// ActionKind tags an action log entry
type ActionKind int

const (
	Check ActionKind = iota
	Bet
	Call
	Raise
	Fold
	AllIn
	ActionAdvanceStreet
	StartHand
	EndHand
)

var actionKindNames = []string{"CHECK", "BET", "CALL", "RAISE", "FOLD", "ALL_IN", "ADVANCE_STREET", "START_HAND", "END_HAND"}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
	return actionKindNames[k]
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(actionKindNames) {
		return nil, fmt.Errorf("invalid action kind %d", int(k))
	}
	return []byte(actionKindNames[k]), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	v, err := parseEnum[ActionKind](actionKindNames, "action kind", text)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseActionKind accepts the wire names ("ALL_IN") as well as lower-case
// shorthands ("allin", "all-in").
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "check":
		return Check, nil
	case "bet":
		return Bet, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "fold":
		return Fold, nil
	case "allin", "all-in", "all_in":
		return AllIn, nil
	}
	return parseEnum[ActionKind](actionKindNames, "action kind", []byte(s))
}

// IsPlayerAction reports whether the kind is something a player does, as
// opposed to a system transition.
func (k ActionKind) IsPlayerAction() bool {
	return k <= AllIn
}

// ActionLogEntry is one immutable record in a hand's log. Snapshot holds the
// hand as it was before the entry was applied (with its own log omitted);
// PlayersSnapshot is present whenever the entry changed the roster.
type ActionLogEntry struct {
	Seq             int        `json:"seq"`
	Type            ActionKind `json:"type"`
	PlayerID        PlayerID   `json:"playerId,omitempty"`
	Amount          *int       `json:"amount,omitempty"`
	Street          Street     `json:"street"`
	Snapshot        *Hand      `json:"snapshot,omitempty"`
	PlayersSnapshot []Player   `json:"playersSnapshot,omitempty"`
}

// Hand is the mutable state of one hand of play
type Hand struct {
	HandNumber          int      `json:"handNumber"`
	DealerSeat          int      `json:"dealerIndex"`
	SBSeat              int      `json:"sbIndex"`
	BBSeat              int      `json:"bbIndex"`
	Street              Street   `json:"street"`
	CurrentTurnPlayerID PlayerID `json:"currentTurnPlayerId"`

	CurrentBet    int  `json:"currentBet"`
	LastRaiseSize int  `json:"lastRaiseSize"` // governs the minimum next raise
	ReopenAllowed bool `json:"reopenAllowed"` // false after a short all-in raise

	ContribThisStreet    Contributions `json:"contribThisStreet"`
	TotalContribThisHand Contributions `json:"totalContribThisHand"` // side-pot math only
	Pot                  PotState      `json:"pot"`

	PayoutResult *PayoutResult `json:"payoutResult,omitempty"`

	ActionLog []ActionLogEntry `json:"actionLog"`
}

// Clone returns a deep copy of the hand. Log entry snapshots are shared:
// they are never mutated once written.
func (h *Hand) Clone() Hand {
	out := *h
	out.ContribThisStreet = maps.Clone(h.ContribThisStreet)
	out.TotalContribThisHand = maps.Clone(h.TotalContribThisHand)
	out.Pot = h.Pot.clone()
	if h.PayoutResult != nil {
		pr := h.PayoutResult.clone()
		out.PayoutResult = &pr
	}
	if h.ActionLog != nil {
		out.ActionLog = make([]ActionLogEntry, len(h.ActionLog))
		copy(out.ActionLog, h.ActionLog)
	}
	return out
}

// snapshot captures the hand for a log entry, without its log.
func (h *Hand) snapshot() *Hand {
	s := h.Clone()
	s.ActionLog = nil
	return &s
}

// appendLog stamps the next sequence number on entry and appends it.
func (h *Hand) appendLog(entry ActionLogEntry) ActionLogEntry {
	entry.Seq = len(h.ActionLog) + 1
	h.ActionLog = append(h.ActionLog, entry)
	return entry
}

// actedThisStreet reports whether the player has a log entry on the current
// street.
func (h *Hand) actedThisStreet(id PlayerID) bool {
	for i := range h.ActionLog {
		if h.ActionLog[i].Street == h.Street && h.ActionLog[i].PlayerID == id {
			return true
		}
	}
	return false
}

// inHand reports whether the player still has a claim on the pot: not folded,
// and either able to act or holding chips in the pot. Busted players sitting
// out the hand are neither.
func (h *Hand) inHand(p *Player) bool {
	if p.State == StateFolded {
		return false
	}
	return p.State == StateActive || h.TotalContribThisHand[p.ID] > 0
}

func intPtr(v int) *int {
	return &v
}
