// Package session owns the one live game of a table. It serialises every
// transition, persists the result before exposing it and tells subscribers
// about each commit.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerdealer/internal/game"
)

// ErrNoGame is returned by transitions when nothing has been started or
// resumed.
var ErrNoGame = errors.New("no game in progress")

// Phase is the coarse view a table UI switches on
type Phase string

const (
	PhaseNone     Phase = ""
	PhaseTable    Phase = "TABLE"
	PhaseShowdown Phase = "SHOWDOWN"
	PhasePayout   Phase = "PAYOUT"
)

// PhaseOf maps a street onto the phase shown for it.
func PhaseOf(street game.Street) Phase {
	switch street {
	case game.Showdown:
		return PhaseShowdown
	case game.Payout:
		return PhasePayout
	default:
		return PhaseTable
	}
}

// Store is where committed games are written.
type Store interface {
	Save(g *game.Game) error
	Load() (g *game.Game, corrupted bool, err error)
	Clear() error
}

// Commit describes one persisted transition.
type Commit struct {
	Op     string               `json:"op"`
	Entry  *game.ActionLogEntry `json:"entry,omitempty"`
	Hand   int                  `json:"hand"`
	Street game.Street          `json:"street"`
	At     time.Time            `json:"at"`
}

// Session is the single writer for one game. All methods are safe for
// concurrent use.
type Session struct {
	mu        sync.Mutex
	store     Store
	logger    *log.Logger
	clock     quartz.Clock
	game      *game.Game
	last      Commit
	listeners []func(Commit)
}

// New creates an empty session. Call Start or Resume before playing.
func New(store Store, logger *log.Logger, clock quartz.Clock) *Session {
	if logger == nil {
		logger = log.Default()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Session{
		store:  store,
		logger: logger.WithPrefix("session"),
		clock:  clock,
	}
}

// OnCommit registers fn to be called after every successful commit. fn runs
// with the session locked and must not call back into it.
func (s *Session) OnCommit(fn func(Commit)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start deals a new game and persists it, replacing any saved game.
func (s *Session) Start(settings game.Settings, setups []game.PlayerSetup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := game.NewGame(settings, setups)
	if err != nil {
		return err
	}
	if err := s.commit(g, "start", nil); err != nil {
		return err
	}
	s.logger.Info("Started game", "players", len(g.Players), "sb", settings.SmallBlind, "bb", settings.BigBlind)
	return nil
}

// Resume loads the saved game. corrupted reports that a saved game existed
// but could not be read and has been discarded; the session is then empty.
func (s *Session) Resume() (corrupted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, corrupted, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if corrupted {
		s.logger.Warn("Saved game was corrupted and has been cleared")
		s.game = nil
		return true, nil
	}
	if g == nil {
		return false, ErrNoGame
	}

	s.game = g
	s.logger.Debug("Resumed game", "hand", g.Hand.HandNumber, "street", g.Hand.Street)
	return false, nil
}

// ResumeAvailability reports whether a saved game exists with at least two
// seated players.
func (s *Session) ResumeAvailability() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, _, err := s.store.Load()
	if err != nil {
		return false, err
	}
	return g != nil && len(g.Players) >= 2, nil
}

// Reset drops the current game and clears the store.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return err
	}
	s.game = nil
	s.last = Commit{}
	return nil
}

// Game returns a copy of the current game, or nil.
func (s *Session) Game() *game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil
	}
	return s.game.Clone()
}

// Phase returns the phase of the current hand.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return PhaseNone
	}
	return PhaseOf(s.game.Hand.Street)
}

// LastCommit returns the most recent commit. It is zero until something has
// been committed in this process.
func (s *Session) LastCommit() Commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Act applies a player action for whoever is on turn.
func (s *Session) Act(a game.Action) (game.ActionLogEntry, error) {
	return s.transitionWithEntry("act", func(g *game.Game) (*game.Game, game.ActionLogEntry, error) {
		return game.Apply(g, a)
	})
}

// Advance closes the betting round and deals the next street.
func (s *Session) Advance() (game.ActionLogEntry, error) {
	return s.transitionWithEntry("advance", game.AdvanceStreet)
}

// GoToShowdown skips to showdown once no more betting is possible.
func (s *Session) GoToShowdown() (game.ActionLogEntry, error) {
	return s.transitionWithEntry("showdown", game.GoToShowdown)
}

// Settle distributes the pots to the declared winners.
func (s *Session) Settle(winners game.PotWinners) error {
	return s.transition("settle", func(g *game.Game) (*game.Game, error) {
		return game.SettleShowdown(g, winners)
	})
}

// AwardUncontested pays every pot to the last player standing.
func (s *Session) AwardUncontested() error {
	return s.transition("award", game.AwardUncontested)
}

// NextHand deals the next hand after a payout.
func (s *Session) NextHand() error {
	return s.transition("next", game.StartNextHand)
}

// Undo reverts the last log entry of the current hand.
func (s *Session) Undo() error {
	return s.transition("undo", game.Undo)
}

func (s *Session) transition(op string, fn func(*game.Game) (*game.Game, error)) error {
	_, err := s.transitionWithEntry(op, func(g *game.Game) (*game.Game, game.ActionLogEntry, error) {
		next, err := fn(g)
		if err != nil {
			return nil, game.ActionLogEntry{}, err
		}
		// Only report an entry the transition appended to the same hand
		var entry game.ActionLogEntry
		n := len(next.Hand.ActionLog)
		if next.Hand.HandNumber == g.Hand.HandNumber && n > len(g.Hand.ActionLog) {
			entry = next.Hand.ActionLog[n-1]
		}
		return next, entry, nil
	})
	return err
}

func (s *Session) transitionWithEntry(op string, fn func(*game.Game) (*game.Game, game.ActionLogEntry, error)) (game.ActionLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return game.ActionLogEntry{}, ErrNoGame
	}

	next, entry, err := fn(s.game)
	if err != nil {
		s.logger.Debug("Rejected", "op", op, "hand", s.game.Hand.HandNumber, "street", s.game.Hand.Street, "error", err)
		return game.ActionLogEntry{}, err
	}

	var logged *game.ActionLogEntry
	if entry.Seq > 0 {
		logged = &entry
	}
	if err := s.commit(next, op, logged); err != nil {
		return game.ActionLogEntry{}, err
	}
	return entry, nil
}

// commit persists g and only then makes it current, so the saved game never
// lags behind what callers have seen.
func (s *Session) commit(g *game.Game, op string, entry *game.ActionLogEntry) error {
	if err := s.store.Save(g); err != nil {
		return fmt.Errorf("failed to persist %s: %w", op, err)
	}
	s.game = g
	s.last = Commit{
		Op:     op,
		Entry:  entry,
		Hand:   g.Hand.HandNumber,
		Street: g.Hand.Street,
		At:     s.clock.Now(),
	}

	attrs := []any{"op", op, "hand", g.Hand.HandNumber, "street", g.Hand.Street}
	if entry != nil {
		attrs = append(attrs, "seq", entry.Seq, "type", entry.Type)
		if entry.PlayerID != "" {
			attrs = append(attrs, "player", entry.PlayerID)
		}
		if entry.Amount != nil {
			attrs = append(attrs, "amount", *entry.Amount)
		}
	}
	s.logger.Debug("Committed", attrs...)

	for _, fn := range s.listeners {
		fn(s.last)
	}
	return nil
}
