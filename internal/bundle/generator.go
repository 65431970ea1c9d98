// Package bundle orchestrates packaging the converter entry script into a
// standalone executable: preflight, tool and dependency checks, spec file
// generation, packager invocation, and artifact verification.
package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"git.home.luguber.info/inful/exepack/internal/config"
	"git.home.luguber.info/inful/exepack/internal/python"
)

// Generator drives the packaging workflow for one project directory.
type Generator struct {
	config  *config.Config
	workDir string
	interp  *python.Interpreter
	runner  python.Runner
}

// NewGenerator creates a Generator rooted at workDir. The interpreter may be
// nil; it is resolved lazily on first use so preflight can fail before any
// subprocess concerns arise.
func NewGenerator(cfg *config.Config, workDir string, interp *python.Interpreter) *Generator {
	return &Generator{
		config:  cfg,
		workDir: workDir,
		interp:  interp,
		runner:  python.ExecRunner{},
	}
}

// SetRunner overrides the Runner used for the packager invocation (test seam).
func (g *Generator) SetRunner(r python.Runner) { g.runner = r }

// Config returns the effective configuration.
func (g *Generator) Config() *config.Config { return g.config }

// EntryPath is the absolute path of the entry script.
func (g *Generator) EntryPath() string {
	return filepath.Join(g.workDir, g.config.Source.Entry)
}

// SpecPath is the absolute path of the generated spec file.
func (g *Generator) SpecPath() string {
	return filepath.Join(g.workDir, g.config.Build.SpecFile)
}

// ArtifactPath is the conventional output path: dist directory plus product
// name, with an .exe suffix on Windows. The packager fixes this layout; it is
// never computed from the packager's output.
func (g *Generator) ArtifactPath() string {
	name := g.config.Output.Name
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(g.workDir, g.config.Output.Directory, name)
}

// interpreter resolves the Python interpreter once and caches it.
func (g *Generator) interpreter() (*python.Interpreter, error) {
	if g.interp != nil {
		return g.interp, nil
	}
	interp, err := python.NewInterpreter(g.config.Build.Python, g.runner)
	if err != nil {
		return nil, err
	}
	g.interp = interp
	return interp, nil
}

// subprocessCtx applies the configured subprocess timeout, if any.
func (g *Generator) subprocessCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := g.config.Build.Timeout.Std(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

// Bundle runs the full packaging workflow and returns its report. The report
// is non-nil even on failure.
func (g *Generator) Bundle(ctx context.Context) (*BuildReport, error) {
	report := NewBuildReport()
	bs := newBuildState(g, report)

	err := runStages(ctx, bs, []StageDef{
		{StagePreflight, stagePreflight},
		{StageEnsureTool, stageEnsureTool},
		{StageCheckDeps, stageCheckDeps},
		{StageGenerateSpec, stageGenerateSpec},
		{StageRunPackager, stageRunPackager},
		{StageVerifyOutput, stageVerifyOutput},
	})
	report.Finish(err)
	return report, err
}

// Check runs only the verification stages: preflight, packaging tool, and
// dependency availability. With install=false missing entries are reported
// as a failure instead of being installed.
func (g *Generator) Check(ctx context.Context, install bool) (*BuildReport, error) {
	report := NewBuildReport()
	bs := newBuildState(g, report)
	bs.SkipInstall = !install

	err := runStages(ctx, bs, []StageDef{
		{StagePreflight, stagePreflight},
		{StageEnsureTool, stageEnsureTool},
		{StageCheckDeps, stageCheckDeps},
	})
	report.Finish(err)
	return report, err
}

// statSize returns the artifact size in bytes.
func (g *Generator) statSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// FormatSize renders a byte count as mebibytes with one decimal ("12.3 MB").
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
