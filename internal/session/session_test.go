package session

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerdealer/internal/game"
	"github.com/lox/pokerdealer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSettings = game.Settings{SmallBlind: 50, BigBlind: 100}
	testSetups   = []game.PlayerSetup{
		{ID: "alice", Name: "Alice", Stack: 1000},
		{ID: "bob", Name: "Bob", Stack: 1000},
		{ID: "carol", Name: "Carol", Stack: 1000},
	}
	start = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func newTestSession(t *testing.T) (*Session, *storage.Store, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(start)
	store := storage.NewStore(filepath.Join(t.TempDir(), "game.json"), testLogger())
	return New(store, testLogger(), clock), store, clock
}

func TestStartPersists(t *testing.T) {
	t.Parallel()

	s, store, _ := newTestSession(t)
	assert.Equal(t, PhaseNone, s.Phase())

	require.NoError(t, s.Start(testSettings, testSetups))
	assert.Equal(t, PhaseTable, s.Phase())

	saved, corrupted, err := store.Load()
	require.NoError(t, err)
	require.False(t, corrupted)
	assert.Equal(t, s.Game(), saved)

	commit := s.LastCommit()
	assert.Equal(t, "start", commit.Op)
	assert.Nil(t, commit.Entry)
	assert.Equal(t, 1, commit.Hand)
	assert.Equal(t, start, commit.At)
}

func TestTransitionsWithoutGame(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t)

	_, err := s.Act(game.NewAction(game.Check))
	require.ErrorIs(t, err, ErrNoGame)
	require.ErrorIs(t, s.NextHand(), ErrNoGame)
	assert.Nil(t, s.Game())
}

func TestActCommitsEveryAction(t *testing.T) {
	t.Parallel()

	s, store, clock := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))

	var commits []Commit
	s.OnCommit(func(c Commit) { commits = append(commits, c) })

	clock.Advance(5 * time.Second)
	entry, err := s.Act(game.RaiseTo(300))
	require.NoError(t, err)
	assert.Equal(t, game.Raise, entry.Type)
	assert.Equal(t, game.PlayerID("alice"), entry.PlayerID)

	saved, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, s.Game(), saved)

	commit := s.LastCommit()
	assert.Equal(t, "act", commit.Op)
	require.NotNil(t, commit.Entry)
	assert.Equal(t, 1, commit.Entry.Seq)
	assert.Equal(t, start.Add(5*time.Second), commit.At)

	_, err = s.Act(game.NewAction(game.Fold))
	require.NoError(t, err)
	_, err = s.Act(game.NewAction(game.Fold))
	require.NoError(t, err)

	require.NoError(t, s.AwardUncontested())
	assert.Equal(t, PhasePayout, s.Phase())
	assert.Equal(t, game.EndHand, s.LastCommit().Entry.Type)

	require.NoError(t, s.NextHand())
	assert.Equal(t, PhaseTable, s.Phase())
	assert.Equal(t, 2, s.Game().Hand.HandNumber)
	assert.Nil(t, s.LastCommit().Entry)

	ops := make([]string, len(commits))
	for i, c := range commits {
		ops[i] = c.Op
	}
	assert.Equal(t, []string{"act", "act", "act", "award", "next"}, ops)
}

func TestRejectedActionKeepsState(t *testing.T) {
	t.Parallel()

	s, store, _ := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))
	before := s.Game()

	_, err := s.Act(game.NewAction(game.Check))
	require.ErrorIs(t, err, game.ErrCallRequired)

	assert.Equal(t, before, s.Game())
	saved, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, before, saved)
	assert.Equal(t, "start", s.LastCommit().Op)
}

func TestShowdownAndSettle(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))

	for range 3 {
		_, err := s.Act(game.NewAction(game.AllIn))
		require.NoError(t, err)
	}

	_, err := s.GoToShowdown()
	require.NoError(t, err)
	assert.Equal(t, PhaseShowdown, s.Phase())

	require.NoError(t, s.Settle(game.PotWinners{Main: []game.PlayerID{"bob"}}))
	assert.Equal(t, PhasePayout, s.Phase())

	g := s.Game()
	p, err := g.Player("bob")
	require.NoError(t, err)
	assert.Equal(t, 3000, p.Stack)
}

func TestUndoPersists(t *testing.T) {
	t.Parallel()

	s, store, _ := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))
	before := s.Game()

	_, err := s.Act(game.NewAction(game.Call))
	require.NoError(t, err)
	require.NoError(t, s.Undo())

	assert.Equal(t, before, s.Game())
	saved, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, before, saved)

	require.ErrorIs(t, s.Undo(), game.ErrNothingToUndo)
}

func TestResume(t *testing.T) {
	t.Parallel()

	s, store, clock := newTestSession(t)

	ok, err := s.ResumeAvailability()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Resume()
	require.ErrorIs(t, err, ErrNoGame)

	require.NoError(t, s.Start(testSettings, testSetups))
	_, err = s.Act(game.NewAction(game.Call))
	require.NoError(t, err)

	resumed := New(store, testLogger(), clock)
	ok, err = resumed.ResumeAvailability()
	require.NoError(t, err)
	assert.True(t, ok)

	corrupted, err := resumed.Resume()
	require.NoError(t, err)
	assert.False(t, corrupted)
	assert.Equal(t, s.Game(), resumed.Game())
}

func TestResumeCorrupted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"settings": []}`), 0o644))

	s := New(storage.NewStore(path, testLogger()), testLogger(), quartz.NewMock(t))
	corrupted, err := s.Resume()
	require.NoError(t, err)
	assert.True(t, corrupted)
	assert.Nil(t, s.Game())

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReset(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))
	require.NoError(t, s.Reset())

	assert.Nil(t, s.Game())
	ok, err := s.ResumeAvailability()
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStore struct {
	storage.Store
	err error
}

func (f *failingStore) Save(*game.Game) error {
	return f.err
}

func TestSaveFailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	s, store, clock := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))
	before := s.Game()

	broken := &failingStore{Store: *store, err: errors.New("disk full")}
	s2 := New(broken, testLogger(), clock)
	_, err := s2.Resume()
	require.NoError(t, err)

	_, err = s2.Act(game.NewAction(game.Call))
	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, before, s2.Game())
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t)
	require.NoError(t, s.Start(testSettings, testSetups))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if g := s.Game(); g != nil {
					_ = game.ChipsInPlay(g)
				}
				_ = s.Phase()
			}
		}()
	}

	actions := []game.Action{game.NewAction(game.Call), game.NewAction(game.Call), game.NewAction(game.Check)}
	for _, a := range actions {
		_, err := s.Act(a)
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, 3000, game.ChipsInPlay(s.Game()))
}
