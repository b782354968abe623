// Package main is the entry point for the inkstorm document tool. It
// reads a block document as canonical JSON, normalizes it and emits
// one of the supported projections.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/inkstorm/internal/config"
	"github.com/dshills/inkstorm/internal/editor"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	inputPath  string
	format     string
	seed       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("inkstorm %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ed, err := buildEditor(opts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := emit(os.Stdout, ed, cfg.Output.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildEditor constructs the editor from either a seed document or the
// JSON input (file path, or stdin when the path is "-").
func buildEditor(opts options, cfg config.Config) (*editor.Editor, error) {
	edOpts := []editor.Option{editor.WithMaxUndoEntries(cfg.History.MaxEntries)}
	if !cfg.Editor.AutoTransform {
		edOpts = append(edOpts, editor.WithoutAutoTransform())
	}

	if opts.seed {
		edOpts = append(edOpts, editor.WithSeedTitle(cfg.Editor.SeedTitle))
		return editor.New(edOpts...), nil
	}

	raw, err := readInput(opts.inputPath)
	if err != nil {
		return nil, err
	}
	ed, err := editor.Load(raw, edOpts...)
	if err != nil {
		return nil, fmt.Errorf("normalizing document: %w", err)
	}
	return ed, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func emit(w io.Writer, ed *editor.Editor, format string) error {
	switch format {
	case "json":
		raw, err := ed.Serialize()
		if err != nil {
			return fmt.Errorf("serializing document: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return err
	case "text":
		_, err := fmt.Fprintln(w, ed.PlainText())
		return err
	case "html":
		_, err := fmt.Fprintln(w, ed.HTML())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.inputPath, "input", "", "Document JSON file (default stdin, \"-\" for stdin)")
	flag.StringVar(&opts.inputPath, "i", "", "Document JSON file (shorthand)")
	flag.StringVar(&opts.format, "format", "", "Output format: json, text or html (overrides config)")
	flag.StringVar(&opts.format, "f", "", "Output format (shorthand)")
	flag.BoolVar(&opts.seed, "seed", false, "Emit a freshly seeded document instead of reading input")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkstorm - block document normalizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inkstorm -seed                  Print a fresh document as JSON\n")
		fmt.Fprintf(os.Stderr, "  inkstorm -i doc.json -f html    Normalize a file and print HTML\n")
		fmt.Fprintf(os.Stderr, "  cat doc.json | inkstorm -f text Print the plain-text projection\n")
	}
	flag.Parse()

	return opts, showVersion
}
