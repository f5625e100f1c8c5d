// Command spinefit exports Spine projects at the largest atlas scale that
// still packs onto a single page.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the export pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/spinefit/internal/check"
	"github.com/backmassage/spinefit/internal/config"
	"github.com/backmassage/spinefit/internal/display"
	"github.com/backmassage/spinefit/internal/logging"
	"github.com/backmassage/spinefit/internal/pipeline"
	"github.com/backmassage/spinefit/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "spinefit: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "spinefit: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spinefit: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	if term.IsTerminal(os.Stdout) {
		display.PrintBanner(os.Stdout)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Debug(cfg.Verbose, "spinefit v%s (%s)", version, commit)
	log.Debug(cfg.Verbose, "Spine: %s", cfg.SpineExec)
	log.Debug(cfg.Verbose, "Export config: %s", cfg.ExportJSON)
	log.Debug(cfg.Verbose, "Scale range: %d-%d%%, fast path: %v", cfg.MinScale, cfg.MaxScale, cfg.TryMaxFirst)

	// Fail fast if Spine or the export template are unusable.
	if err := check.CheckDeps(&cfg, log); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancelling the context kills running Spine
	// exports and stops new projects from starting.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping running exports...")
		cancel()
	}()

	// Phase 4: Run pipeline (plan → search per project → report).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if !stats.OK() {
		return 1
	}
	return 0
}
