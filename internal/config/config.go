// Package config resolves the analyzer's run options from the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUsage marks a malformed invocation, reported before any file I/O.
var ErrUsage = errors.New("usage error")

const (
	CSV_EXT  = ".csv"
	PNG_EXT  = ".png"
	HTML_EXT = ".html"
)

// Config holds the resolved options of one analyzer run.
type Config struct {
	Input   string // Path to the blackbox log
	HTML    bool   // Also render the interactive chart page
	Summary bool   // Print per-axis statistics after the artifacts
	Version bool   // Print build metadata and exit
}

// FromArgs parses command-line arguments (without the program name). Usage
// text and flag errors are written to output.
func FromArgs(name string, args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Input, "input", "", "Path to the blackbox log file (required)")
	fs.StringVar(&cfg.Input, "i", "", "Shorthand for -input")
	fs.BoolVar(&cfg.HTML, "html", false, "Also write an interactive HTML chart")
	fs.BoolVar(&cfg.Summary, "summary", false, "Print per-axis statistics of the scaled terms")
	fs.BoolVar(&cfg.Version, "version", false, "Print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s -input <log>\n\nAnalyze blackbox logs and output PID values to CSV and graphics.\n\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, fs.Args())
	}
	if cfg.Version {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		fs.Usage()
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("%w: -input is required", ErrUsage)
	}
	return nil
}

// BaseName returns the input file name with its last extension removed. A
// name that is only an extension, like ".bbl", is kept whole.
func (c *Config) BaseName() string {
	base := filepath.Base(c.Input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// CSVPath is where the tabular artifact is written, relative to the working
// directory.
func (c *Config) CSVPath() string { return c.BaseName() + CSV_EXT }

// PNGPath is where the chart image is written.
func (c *Config) PNGPath() string { return c.BaseName() + PNG_EXT }

// HTMLPath is where the interactive chart page is written.
func (c *Config) HTMLPath() string { return c.BaseName() + HTML_EXT }
