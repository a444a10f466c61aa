package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/pokerdealer/internal/game"
)

// Encode writes the hand history to w as PHH TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatEntry renders one log entry as a PHH action. ok is false for entries
// PHH has no line for. Street changes become comments because no cards are
// dealt.
func formatEntry(entry game.ActionLogEntry, player string) (line string, ok bool) {
	switch entry.Type {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s cbr %d", player, amountOf(entry)), true
	case game.AllIn:
		// An all-in that does not top the bet is a call
		if entry.Snapshot != nil && amountOf(entry) <= entry.Snapshot.CurrentBet {
			return player + " cc", true
		}
		return fmt.Sprintf("%s cbr %d", player, amountOf(entry)), true
	case game.ActionAdvanceStreet:
		return "# " + strings.ToLower(entry.Street.String()), true
	default:
		return "", false
	}
}

func amountOf(entry game.ActionLogEntry) int {
	if entry.Amount == nil {
		return 0
	}
	return *entry.Amount
}
