package game

import "fmt"

// Street represents the betting round, or one of the two terminal phases
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Payout
)

var streetNames = []string{"PREFLOP", "FLOP", "TURN", "RIVER", "SHOWDOWN", "PAYOUT"}

func (s Street) String() string {
	if s < 0 || int(s) >= len(streetNames) {
		return fmt.Sprintf("Street(%d)", int(s))
	}
	return streetNames[s]
}

func (s Street) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(streetNames) {
		return nil, fmt.Errorf("invalid street %d", int(s))
	}
	return []byte(streetNames[s]), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	v, err := parseEnum[Street](streetNames, "street", text)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsTerminal reports whether betting is over for the hand.
func (s Street) IsTerminal() bool {
	return s == Showdown || s == Payout
}

// next returns the street that follows s. Terminal streets do not advance.
func (s Street) next() Street {
	switch s {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	case River:
		return Showdown
	default:
		return s
	}
}

// CallNeeded returns how many chips the player must add to match the current
// bet. Players without a contribution entry are treated as having put in 0.
func CallNeeded(h *Hand, id PlayerID) int {
	return max(0, h.CurrentBet-h.ContribThisStreet[id])
}

// MinRaiseTo returns the smallest legal raise target. ok is false when there
// is no bet to raise or betting has not been reopened.
func MinRaiseTo(h *Hand) (to int, ok bool) {
	if h.CurrentBet == 0 || !h.ReopenAllowed {
		return 0, false
	}
	return h.CurrentBet + h.LastRaiseSize, true
}

// ApplyPayment moves up to amount chips from the player's stack into the pot.
// The payment is clamped to the stack, so callers must use the returned
// amount rather than the request. A player whose stack reaches zero is
// marked all-in.
func ApplyPayment(players []Player, h *Hand, id PlayerID, amount int) (int, error) {
	idx, err := playerIndex(players, id)
	if err != nil {
		return 0, err
	}
	p := &players[idx]

	if h.ContribThisStreet == nil {
		h.ContribThisStreet = Contributions{}
	}
	if h.TotalContribThisHand == nil {
		h.TotalContribThisHand = Contributions{}
	}

	pay := max(0, min(amount, p.Stack))
	p.Stack -= pay
	h.ContribThisStreet[id] += pay
	h.TotalContribThisHand[id] += pay
	h.Pot.Main += pay

	if p.Stack == 0 {
		p.State = StateAllIn
	}
	return pay, nil
}
