package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/exepack/internal/bundle"
	"git.home.luguber.info/inful/exepack/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Yes     bool          `short:"y" help:"Delete transient build files without prompting"`
	Keep    bool          `short:"k" help:"Keep transient build files without prompting"`
	NoPause bool          `name:"no-pause" help:"Skip the final 'press Enter' pause"`
	Timeout time.Duration `help:"Abort any subprocess running longer than this (0 disables)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	if b.Yes && b.Keep {
		return fmt.Errorf("--yes and --keep are mutually exclusive")
	}
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Timeout > 0 {
		cfg.Build.Timeout = config.Duration(b.Timeout)
	}

	// Friendly user-facing messages go to stdout; diagnostics to slog.
	fmt.Fprintln(g.Stdout, "Starting exepack build")
	slog.Info("Starting packaging workflow",
		"entry", cfg.Source.Entry,
		"name", cfg.Output.Name,
		"packages", len(cfg.Source.Packages))

	gen := bundle.NewGenerator(cfg, ".", nil)
	report, err := gen.Bundle(g.Ctx)
	if err != nil {
		b.pause(g)
		return err
	}

	if b.resolveCleanup(g, cfg) {
		removed, cleanErr := gen.Cleanup()
		if cleanErr != nil {
			slog.Warn("Cleanup incomplete", "error", cleanErr)
		} else {
			slog.Info("Cleanup finished", "removed", len(removed))
		}
	}

	absPath := report.ArtifactPath
	if abs, absErr := filepath.Abs(absPath); absErr == nil {
		absPath = abs
	}
	fmt.Fprintln(g.Stdout, "Packaging completed successfully")
	fmt.Fprintf(g.Stdout, "Executable: %s (%s)\n", absPath, bundle.FormatSize(report.ArtifactBytes))

	b.pause(g)
	return nil
}

// pause blocks for the final 'press Enter' prompt. An interrupted run must
// abort cleanly, so a canceled context never waits on stdin.
func (b *BuildCmd) pause(g *Global) {
	if b.NoPause || g.Ctx.Err() != nil {
		return
	}
	Pause(g.Stdin, g.Stdout)
}

// resolveCleanup decides whether transient files are deleted after a
// successful run. Precedence: --yes/--keep, then build.cleanup from config,
// then an interactive prompt.
func (b *BuildCmd) resolveCleanup(g *Global, cfg *config.Config) bool {
	switch {
	case b.Yes:
		return true
	case b.Keep:
		return false
	case cfg.Build.Cleanup != nil:
		return *cfg.Build.Cleanup
	default:
		return Confirm(g.Stdin, g.Stdout, "\nDelete transient build files?")
	}
}
