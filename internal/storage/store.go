package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerdealer/internal/game"
)

// Store keeps one saved game in a file.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore returns a store backed by the file at path. Nothing is read or
// written until Load or Save.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, logger: logger.WithPrefix("storage")}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the saved game. Saving nil clears it.
func (s *Store) Save(g *game.Game) error {
	if g == nil {
		return s.Clear()
	}
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	s.logger.Debug("Saved game", "path", s.path, "hand", g.Hand.HandNumber, "street", g.Hand.Street, "bytes", len(data))
	return nil
}

// Load reads the saved game. With nothing saved it returns a nil game. A file
// that cannot be decoded is deleted and reported through corrupted rather
// than as an error, so the caller can start fresh.
func (s *Store) Load() (g *game.Game, corrupted bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read saved game: %w", err)
	}

	g, err = Decode(data)
	if err != nil {
		s.logger.Warn("Discarding corrupted saved game", "path", s.path, "error", err)
		if err := s.Clear(); err != nil {
			return nil, true, err
		}
		return nil, true, nil
	}
	return g, false, nil
}

// Clear removes the saved game. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear saved game: %w", err)
	}
	return nil
}
