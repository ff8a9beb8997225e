// Command blackbox analyzes a blackbox PID log and writes the scaled terms to
// CSV plus a roll/pitch/yaw scatter chart.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/chart"
	"github.com/banshee-data/blackbox/internal/config"
	"github.com/banshee-data/blackbox/internal/export"
	"github.com/banshee-data/blackbox/internal/fsutil"
	"github.com/banshee-data/blackbox/internal/monitoring"
	"github.com/banshee-data/blackbox/internal/summary"
	"github.com/banshee-data/blackbox/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("blackbox: ")
	os.Exit(run(os.Args[1:], fsutil.OSFileSystem{}, os.Stdout, os.Stderr))
}

// run executes one analyzer invocation and returns the process exit code.
func run(args []string, fsys fsutil.FileSystem, stdout, stderr io.Writer) int {
	cfg, err := config.FromArgs("blackbox", args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "blackbox: %v\n", err)
		return exitUsage
	}

	if cfg.Version {
		fmt.Fprintln(stdout, version.String("blackbox"))
		return exitOK
	}

	if err := analyze(cfg, fsys, stdout); err != nil {
		fmt.Fprintf(stderr, "blackbox: %v\n", err)
		return exitError
	}
	return exitOK
}

// analyze decodes the log fully, then runs every sink in turn. The first
// failure aborts the run; artifacts already written are left in place.
func analyze(cfg *config.Config, fsys fsutil.FileSystem, stdout io.Writer) error {
	records, err := blackbox.ReadFile(fsys, cfg.Input)
	if err != nil {
		return err
	}
	monitoring.Logf("decoded %d records from %s", len(records), cfg.Input)

	csvPath := cfg.CSVPath()
	if err := export.WriteFile(fsys, csvPath, records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "CSV file generated: %s\n", csvPath)

	pngPath := cfg.PNGPath()
	if err := chart.WritePNG(fsys, pngPath, records, chart.Options{}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Graphics file generated: %s\n", pngPath)

	if cfg.HTML {
		htmlPath := cfg.HTMLPath()
		if err := chart.WriteHTML(fsys, htmlPath, records, chart.Options{}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "HTML file generated: %s\n", htmlPath)
	}

	if cfg.Summary {
		if err := summary.Write(stdout, summary.Compute(records)); err != nil {
			return err
		}
	}
	return nil
}
