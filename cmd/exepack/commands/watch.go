package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/exepack/internal/bundle"
)

// WatchCmd implements the 'watch' command: rerun the packaging workflow
// whenever the entry script changes. Transient files are kept between runs so
// the packager can reuse its cache.
type WatchCmd struct {
	Debounce time.Duration `default:"2s" help:"Quiet period after a change before rebuilding"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	entry, err := filepath.Abs(cfg.Source.Entry)
	if err != nil {
		return fmt.Errorf("failed to resolve entry path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			slog.Error("Error closing file watcher", "error", closeErr)
		}
	}()

	// Watch the containing directory; watching the file directly breaks on
	// editors that replace it on save.
	if err := watcher.Add(filepath.Dir(entry)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(entry), err)
	}

	slog.Info("Watching entry script", "path", entry, "debounce", w.Debounce)
	fmt.Fprintf(g.Stdout, "Watching %s (Ctrl-C to stop)\n", cfg.Source.Entry)

	gen := bundle.NewGenerator(cfg, ".", nil)
	w.runOnce(g, gen)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-g.Ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != entry {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("Entry script changed", "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-pending:
			w.runOnce(g, gen)
		}
	}
}

// runOnce executes one packaging run; failures are reported but do not stop
// the watch loop.
func (w *WatchCmd) runOnce(g *Global, gen *bundle.Generator) {
	report, err := gen.Bundle(g.Ctx)
	if err != nil {
		slog.Error("Rebuild failed", "error", err)
		return
	}
	fmt.Fprintf(g.Stdout, "Rebuilt %s (%s)\n", report.ArtifactPath, bundle.FormatSize(report.ArtifactBytes))
}
