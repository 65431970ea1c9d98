package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"git.home.luguber.info/inful/exepack/internal/logfields"
)

// packagerBinary is the external packaging tool invoked against the spec file.
const packagerBinary = "pyinstaller"

// lookPath is a seam for tests running without the packager installed.
var lookPath = exec.LookPath

// runPackager executes `pyinstaller <spec> --clean` in the project directory.
// Executable-not-found and non-zero exit are both terminal; there is no retry.
func (g *Generator) runPackager(ctx context.Context) error {
	if _, err := lookPath(packagerBinary); err != nil {
		return fmt.Errorf("%s executable not found: %w", packagerBinary, err)
	}
	slog.Info("Running packaging tool",
		logfields.Command(packagerBinary),
		logfields.Path(g.SpecPath()))
	if err := g.runner.RunIn(ctx, g.workDir, packagerBinary, g.config.Build.SpecFile, "--clean"); err != nil {
		return fmt.Errorf("%s failed: %w", packagerBinary, err)
	}
	return nil
}
