package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	sim := New(Config{Games: 1})
	assert.Equal(t, 6, sim.config.Players)
	assert.Equal(t, 100, sim.config.BigBlind)
	assert.Equal(t, 50, sim.config.SmallBlind)
	assert.Equal(t, 10000, sim.config.Stack)
	assert.Equal(t, []string{"rand"}, sim.config.Bots)
	assert.Positive(t, sim.config.Workers)
}

func TestRun(t *testing.T) {
	t.Parallel()

	sim := New(Config{
		Games:        8,
		HandsPerGame: 40,
		Players:      6,
		Stack:        2000,
		Seed:         12345,
		Workers:      4,
		Bots:         []string{"rand", "maniac", "call"},
		UndoEvery:    3,
		Logger:       quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Games)
	assert.Positive(t, stats.Hands)
	assert.LessOrEqual(t, stats.Hands, 8*40)
	assert.Positive(t, stats.Actions)
	assert.Positive(t, stats.Showdowns)
	assert.Positive(t, stats.SidePots, "maniacs at short stacks should create side pots")
	assert.Positive(t, stats.Undos)
	assert.Equal(t, stats.Hands, stats.Showdowns+stats.Uncontested)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Games:        3,
		HandsPerGame: 20,
		Seed:         7,
		Workers:      3,
		Bots:         []string{"maniac", "rand"},
		Logger:       quietLogger(),
	}

	first, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunFoldBots(t *testing.T) {
	t.Parallel()

	stats, err := New(Config{
		Games:        1,
		HandsPerGame: 10,
		Players:      3,
		Bots:         []string{"fold"},
		Logger:       quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	// The big blind collects every hand uncontested
	assert.Equal(t, 10, stats.Hands)
	assert.Equal(t, 10, stats.Uncontested)
	assert.Zero(t, stats.Showdowns)
}

func TestRunUnknownBot(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Games: 1, Bots: []string{"shark"}, Logger: quietLogger()}).Run(context.Background())
	require.ErrorContains(t, err, `unknown bot "shark"`)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 4, Logger: quietLogger()}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
