// Package storage persists a game to a single JSON file and reads it back,
// discarding anything that does not look like a saved game.
package storage

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lox/pokerdealer/internal/game"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const schemaURL = "https://pokerdealer.dev/schemas/game.json"

// ErrCorrupted is returned when saved data is not a usable game.
var ErrCorrupted = errors.New("saved game is corrupted")

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile("schemas/game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
})

// Encode renders a game as indented JSON.
func Encode(g *game.Game) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}
	return data, nil
}

// Decode parses a saved game. Invalid JSON, a payload that does not match
// the saved-game schema, and a game that breaks the engine's invariants are
// all reported as ErrCorrupted.
func Decode(data []byte) (*game.Game, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrCorrupted, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return &g, nil
}
