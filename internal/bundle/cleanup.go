package bundle

import (
	"log/slog"
	"os"
	"path/filepath"

	xerrors "git.home.luguber.info/inful/exepack/internal/errors"
	"git.home.luguber.info/inful/exepack/internal/logfields"
)

// transientDirs are the packager's intermediate directories, safe to delete
// after a run.
var transientDirs = []string{"build", "__pycache__"}

// Cleanup removes the build-intermediate directory, the bytecode cache, and
// the generated spec file. Any subset may already be absent; removing nothing
// is not an error, so the operation is idempotent. Returns the paths removed.
func (g *Generator) Cleanup() ([]string, error) {
	targets := make([]string, 0, len(transientDirs)+1)
	for _, d := range transientDirs {
		targets = append(targets, filepath.Join(g.workDir, d))
	}
	targets = append(targets, g.SpecPath())

	var removed []string
	for _, target := range targets {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return removed, xerrors.CleanupFailed(target, err)
		}
		slog.Info("Removed transient artifact", logfields.Path(target))
		removed = append(removed, target)
	}
	return removed, nil
}
