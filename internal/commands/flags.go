package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/taskboard/internal/core/codec"
	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/notation"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	VaultDir   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskboard", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskboard")
}

// SnapshotPath returns the snapshot file location inside the data dir.
func (f *Flags) SnapshotPath() string {
	return filepath.Join(f.DataDir, "snapshot.json")
}

// newCodec builds the task line codec from configuration. The notation
// is pre-validated by config.Load.
func newCodec(cfg *config.Config) *codec.Codec {
	n, err := notation.Parse(cfg.DefaultNotation)
	if err != nil {
		n = notation.Spaced
	}
	return codec.New(cfg.Alphabet(), n)
}
