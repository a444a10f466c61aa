// Package config loads the table configuration from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokerdealer/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Table   *TableConfig   `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
	Storage *StorageConfig `hcl:"storage,block"`
	Log     *LogConfig     `hcl:"log,block"`
}

// TableConfig holds the blinds and table rules
type TableConfig struct {
	SmallBlind   int    `hcl:"small_blind,optional"`
	BigBlind     int    `hcl:"big_blind,optional"`
	RoundingRule string `hcl:"rounding_rule,optional"`
	BurnCard     *bool  `hcl:"burn_card,optional"`
}

// PlayerConfig seats one player; seats follow file order
type PlayerConfig struct {
	ID    string `hcl:"id,label"`
	Name  string `hcl:"name,optional"`
	Stack int    `hcl:"stack,optional"`
}

// StorageConfig says where the game is saved
type StorageConfig struct {
	Path string `hcl:"path,optional"`
}

// LogConfig controls log output
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

const (
	defaultSmallBlind = 50
	defaultBigBlind   = 100
	defaultStack      = 10000
	defaultStatePath  = "pokerdealer.json"
)

// DefaultConfig returns a three-handed table with 100 big blinds each.
func DefaultConfig() *Config {
	burn := true
	return &Config{
		Table: &TableConfig{
			SmallBlind:   defaultSmallBlind,
			BigBlind:     defaultBigBlind,
			RoundingRule: game.RoundingButtonNear,
			BurnCard:     &burn,
		},
		Players: []PlayerConfig{
			{ID: "alice", Name: "Alice", Stack: defaultStack},
			{ID: "bob", Name: "Bob", Stack: defaultStack},
			{ID: "carol", Name: "Carol", Stack: defaultStack},
		},
		Storage: &StorageConfig{Path: defaultStatePath},
		Log:     &LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration from an HCL file. A missing file yields the
// defaults; fields left out of the file are filled from them.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = defaultBigBlind
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = c.Table.BigBlind / 2
	}
	if c.Table.RoundingRule == "" {
		c.Table.RoundingRule = game.RoundingButtonNear
	}
	if c.Table.BurnCard == nil {
		c.Table.BurnCard = defaults.Table.BurnCard
	}

	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
	for i := range c.Players {
		if c.Players[i].Name == "" {
			c.Players[i].Name = c.Players[i].ID
		}
		if c.Players[i].Stack == 0 {
			c.Players[i].Stack = c.Table.BigBlind * 100
		}
	}

	if c.Storage == nil {
		c.Storage = defaults.Storage
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStatePath
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind (%d) must be at least the small blind (%d)", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.RoundingRule != game.RoundingButtonNear {
		return fmt.Errorf("unsupported rounding rule %q", c.Table.RoundingRule)
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("at least 2 players are required, got %d", len(c.Players))
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.ID] {
			return fmt.Errorf("duplicate player %q", p.ID)
		}
		seen[p.ID] = true
		if p.Stack < 0 {
			return fmt.Errorf("player %q has a negative stack", p.ID)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

// Settings returns the engine settings for the table.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		SmallBlind:   c.Table.SmallBlind,
		BigBlind:     c.Table.BigBlind,
		RoundingRule: c.Table.RoundingRule,
		BurnCard:     c.Table.BurnCard != nil && *c.Table.BurnCard,
	}
}

// PlayerSetups returns the seating in file order.
func (c *Config) PlayerSetups() []game.PlayerSetup {
	setups := make([]game.PlayerSetup, len(c.Players))
	for i, p := range c.Players {
		setups[i] = game.PlayerSetup{ID: game.PlayerID(p.ID), Name: p.Name, Stack: p.Stack}
	}
	return setups
}
