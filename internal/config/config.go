// Package config loads inkstorm settings from a TOML file with
// environment variable overrides. A missing config file is not an
// error; defaults apply.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes all recognized environment overrides.
const EnvPrefix = "INKSTORM_"

// Config holds all runtime settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	History HistoryConfig `toml:"history"`
	Output  OutputConfig  `toml:"output"`
}

// EditorConfig controls document seeding and typing behavior.
type EditorConfig struct {
	AutoTransform bool   `toml:"auto_transform"`
	SeedTitle     string `toml:"seed_title"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// OutputConfig selects the projection emitted by the CLI.
type OutputConfig struct {
	// Format is one of "json", "text" or "html".
	Format string `toml:"format"`
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			AutoTransform: true,
			SeedTitle:     "Untitled",
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Load reads the TOML file at path, layers environment overrides on
// top and validates the result. An empty path or a missing file yields
// defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	switch c.Output.Format {
	case "json", "text", "html":
	default:
		return fmt.Errorf("output.format must be json, text or html, got %q", c.Output.Format)
	}
	return nil
}

// applyEnv layers INKSTORM_-prefixed overrides onto cfg.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "AUTO_TRANSFORM"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %sAUTO_TRANSFORM: %w", EnvPrefix, err)
		}
		cfg.Editor.AutoTransform = b
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SEED_TITLE"); ok {
		cfg.Editor.SeedTitle = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_UNDO_ENTRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sMAX_UNDO_ENTRIES: %w", EnvPrefix, err)
		}
		cfg.History.MaxEntries = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "OUTPUT_FORMAT"); ok {
		cfg.Output.Format = v
	}
	return nil
}
