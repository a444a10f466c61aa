package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/pokerdealer/internal/gameid"
	"github.com/lox/pokerdealer/internal/phh"
)

// HistoryCmd exports the current hand in PHH form.
type HistoryCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
	HandID string `help:"Hand identifier to record (generated when empty)"`
}

func (cmd *HistoryCmd) Run(globals *Globals) error {
	e, err := globals.open(true)
	if err != nil {
		return err
	}

	id := cmd.HandID
	if id == "" {
		if id, err = gameid.Generate(); err != nil {
			return err
		}
	}

	hist, err := phh.FromGame(e.session.Game(), id, time.Now().UTC())
	if err != nil {
		return err
	}
	hist.Table = filepath.Base(e.cfg.Storage.Path)

	if cmd.Output == "" {
		return phh.Encode(e.out, hist)
	}

	data, err := phh.EncodeToBytes(hist)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Output, data, 0o644); err != nil {
		return fmt.Errorf("write hand history: %w", err)
	}
	e.logger.Info("Wrote hand history", "hand", id, "path", cmd.Output)
	return nil
}
