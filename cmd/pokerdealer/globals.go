package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerdealer/internal/config"
	"github.com/lox/pokerdealer/internal/session"
	"github.com/lox/pokerdealer/internal/storage"
)

// Globals are the flags shared by every command
type Globals struct {
	Config   string `short:"c" help:"Path to the HCL config file" default:"pokerdealer.hcl" type:"path"`
	State    string `help:"Saved game path (overrides the config)" type:"path"`
	LogLevel string `help:"Log level (overrides the config)"`
	NoColor  bool   `help:"Disable colored output"`

	out    io.Writer
	errOut io.Writer
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

func (g *Globals) stderr() io.Writer {
	if g.errOut == nil {
		return os.Stderr
	}
	return g.errOut
}

// load reads the config with command-line overrides applied.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", g.Config, err)
	}
	if g.State != "" {
		cfg.Storage.Path = g.State
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the config's log block.
func newLogger(w io.Writer, lc *config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	switch strings.ToLower(lc.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}
	return logger, nil
}

// env is what a table command works with
type env struct {
	cfg     *config.Config
	logger  *log.Logger
	session *session.Session
	styles  styles
	out     io.Writer
}

// open loads config, logger and session. When resume is set the saved game
// must exist.
func (g *Globals) open(resume bool) (*env, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(g.stderr(), cfg.Log)
	if err != nil {
		return nil, err
	}

	store := storage.NewStore(cfg.Storage.Path, logger)
	sess := session.New(store, logger, quartz.NewReal())
	sess.OnCommit(func(c session.Commit) {
		logger.Debug("Saved", "op", c.Op, "hand", c.Hand, "street", c.Street, "path", store.Path())
	})

	e := &env{
		cfg:     cfg,
		logger:  logger,
		session: sess,
		styles:  newStyles(g.stdout(), g.NoColor),
		out:     g.stdout(),
	}
	if !resume {
		return e, nil
	}

	corrupted, err := sess.Resume()
	switch {
	case corrupted:
		return nil, fmt.Errorf("saved game at %s was corrupted and has been discarded; run new", store.Path())
	case errors.Is(err, session.ErrNoGame):
		return nil, fmt.Errorf("no saved game at %s; run new", store.Path())
	case err != nil:
		return nil, err
	}
	return e, nil
}

// show prints the current game.
func (e *env) show() {
	if g := e.session.Game(); g != nil {
		renderStatus(e.out, e.styles, g)
	}
}
