package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Editor.AutoTransform {
		t.Error("auto_transform should default to true")
	}
	if cfg.Editor.SeedTitle != "Untitled" {
		t.Errorf("seed_title = %q, want Untitled", cfg.Editor.SeedTitle)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("max_entries = %d, want 1000", cfg.History.MaxEntries)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty path should yield defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstorm.toml")
	content := `
[editor]
auto_transform = false
seed_title = "Draft"

[history]
max_entries = 50

[output]
format = "html"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.AutoTransform {
		t.Error("auto_transform should be false")
	}
	if cfg.Editor.SeedTitle != "Draft" {
		t.Errorf("seed_title = %q, want Draft", cfg.Editor.SeedTitle)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("max_entries = %d, want 50", cfg.History.MaxEntries)
	}
	if cfg.Output.Format != "html" {
		t.Errorf("format = %q, want html", cfg.Output.Format)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstorm.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"text\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Output.Format)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("untouched max_entries = %d, want default 1000", cfg.History.MaxEntries)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstorm.toml")
	if err := os.WriteFile(path, []byte("editor = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INKSTORM_AUTO_TRANSFORM", "false")
	t.Setenv("INKSTORM_SEED_TITLE", "Scratch")
	t.Setenv("INKSTORM_MAX_UNDO_ENTRIES", "7")
	t.Setenv("INKSTORM_OUTPUT_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.AutoTransform {
		t.Error("env override should disable auto_transform")
	}
	if cfg.Editor.SeedTitle != "Scratch" {
		t.Errorf("seed_title = %q, want Scratch", cfg.Editor.SeedTitle)
	}
	if cfg.History.MaxEntries != 7 {
		t.Errorf("max_entries = %d, want 7", cfg.History.MaxEntries)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Output.Format)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkstorm.toml")
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INKSTORM_MAX_UNDO_ENTRIES", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 5 {
		t.Errorf("max_entries = %d, want env value 5", cfg.History.MaxEntries)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("INKSTORM_MAX_UNDO_ENTRIES", "many")
	if _, err := Load(""); err == nil {
		t.Fatal("non-numeric MAX_UNDO_ENTRIES must fail")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.History.MaxEntries = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero max_entries must fail validation")
	}

	cfg = Default()
	cfg.Output.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown output format must fail validation")
	}
}
