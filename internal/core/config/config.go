// Package config handles configuration loading and validation for
// taskboard.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskboard/internal/core/board"
	"github.com/colonyops/taskboard/internal/core/scanner"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	// DefaultNotation is used when serialization appends a field that was
	// not present in the text: plain, spaced, bracketed, or annotation.
	DefaultNotation string `yaml:"default_notation"`

	// StatusAlphabet maps checkbox symbols to status types. Merged over
	// the built-in mapping; user entries override.
	StatusAlphabet map[string]string `yaml:"status_alphabet"`

	// HiddenFields lists metadata fields stripped from display titles.
	HiddenFields []string `yaml:"hidden_fields"`

	// VaultDir is the root directory scanned for markdown documents.
	VaultDir string `yaml:"vault_dir"`

	// ScanFilters gate which files and tasks participate in a scan.
	ScanFilters scanner.Filters `yaml:"scan_filters"`

	// Theme selects the color palette used by the board renderer.
	Theme string `yaml:"theme"`

	// Boards define the columns tasks are classified into.
	Boards []Board `yaml:"boards"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// Board is one named board with its column definitions.
type Board struct {
	Name    string             `yaml:"name"`
	Columns []board.ColumnSpec `yaml:"columns"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultNotation: "spaced",
		StatusAlphabet:  map[string]string{},
		Boards: []Board{{
			Name: "default",
			Columns: []board.ColumnSpec{
				{Name: "Overdue", Kind: board.KindDated, Range: &board.DateRange{From: -60, To: -1}},
				{Name: "Today", Kind: board.KindDated, Range: &board.DateRange{From: 0, To: 0}},
				{Name: "This Week", Kind: board.KindDated, Range: &board.DateRange{From: 1, To: 7}},
				{Name: "Undated", Kind: board.KindUndated},
				{Name: "Done", Kind: board.KindCompleted, Limit: 20},
			},
		}},
	}
}

// Load reads configuration from the given path and sets the data
// directory. If configPath is empty or doesn't exist, returns defaults
// with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultNotation == "" {
		c.DefaultNotation = defaults.DefaultNotation
	}
	if len(c.Boards) == 0 {
		c.Boards = defaults.Boards
	}
}

// Alphabet returns the effective status alphabet: the built-in mapping
// with user overrides merged in.
func (c *Config) Alphabet() task.Alphabet {
	alphabet := task.DefaultAlphabet()
	for symbol, typ := range c.StatusAlphabet {
		alphabet[symbol] = task.StatusType(typ)
	}
	return alphabet
}

// FindBoard returns the named board, or the first board when name is
// empty.
func (c *Config) FindBoard(name string) (Board, bool) {
	if name == "" && len(c.Boards) > 0 {
		return c.Boards[0], true
	}
	for _, b := range c.Boards {
		if b.Name == name {
			return b, true
		}
	}
	return Board{}, false
}
