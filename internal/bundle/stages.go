package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	xerrors "git.home.luguber.info/inful/exepack/internal/errors"
	"git.home.luguber.info/inful/exepack/internal/logfields"
	"git.home.luguber.info/inful/exepack/internal/python"
)

// Stage is a discrete unit of work in the packaging workflow.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Workflow must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Generator   *Generator
	Report      *BuildReport
	SkipInstall bool // check-only mode: report missing packages instead of installing
	start       time.Time
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator: g,
		Report:    report,
		start:     time.Now(),
	}
}

// runStages executes stages in order, recording timing and stopping at the
// first failure. Each stage prints a success or failure marker; there are no
// retries and no partial-success states.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStageError(st.Name, se)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur
		if err == nil {
			bs.Report.recordStageSuccess(st.Name)
			slog.Debug("Stage completed",
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Microseconds())/1000))
			fmt.Printf("✓ %s\n", stageTitles[st.Name])
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.recordStageError(st.Name, se)
		slog.Error("Stage failed",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000),
			logfields.Error(se.Err))
		fmt.Printf("✗ %s: %v\n", stageTitles[st.Name], se.Err)
		return se
	}
	return nil
}

// stagePreflight verifies the entry script exists. Nothing else may run, and
// in particular no subprocess may be spawned, before this passes.
func stagePreflight(_ context.Context, bs *BuildState) error {
	entry := bs.Generator.EntryPath()
	if _, err := os.Stat(entry); err != nil {
		return newFatalStageError(StagePreflight, xerrors.SourceMissing(bs.Generator.Config().Source.Entry))
	}
	slog.Debug("Entry script found", logfields.Path(entry))
	return nil
}

// stageEnsureTool verifies the packaging tool is importable, installing it
// once if absent.
func stageEnsureTool(ctx context.Context, bs *BuildState) error {
	interp, err := bs.Generator.interpreter()
	if err != nil {
		return newFatalStageError(StageEnsureTool, err)
	}
	if interp.CheckImport(ctx, python.ImportName("pyinstaller")) {
		return nil
	}
	if bs.SkipInstall {
		return newFatalStageError(StageEnsureTool,
			fmt.Errorf("packaging tool not installed (run with --install to remediate)"))
	}
	slog.Info("Packaging tool missing, installing", logfields.Package("pyinstaller"))
	installCtx, cancel := bs.Generator.subprocessCtx(ctx)
	defer cancel()
	if err := interp.Install(installCtx, "pyinstaller"); err != nil {
		return newFatalStageError(StageEnsureTool, xerrors.ToolInstallFailed("pyinstaller", err))
	}
	return nil
}

// stageCheckDeps probes every required package and installs the missing
// subset in one batch pip call.
func stageCheckDeps(ctx context.Context, bs *BuildState) error {
	interp, err := bs.Generator.interpreter()
	if err != nil {
		return newFatalStageError(StageCheckDeps, err)
	}
	packages := bs.Generator.Config().Source.Packages
	missing := interp.MissingPackages(ctx, packages)
	bs.Report.MissingPackages = missing
	if len(missing) == 0 {
		return nil
	}
	if bs.SkipInstall {
		return newFatalStageError(StageCheckDeps,
			fmt.Errorf("missing packages: %v (run with --install to remediate)", missing))
	}
	slog.Info("Installing missing packages", logfields.Packages(len(missing)))
	installCtx, cancel := bs.Generator.subprocessCtx(ctx)
	defer cancel()
	if err := interp.Install(installCtx, missing...); err != nil {
		return newFatalStageError(StageCheckDeps, xerrors.DepsInstallFailed(missing, err))
	}
	bs.Report.InstalledPackages = missing
	return nil
}

// stageGenerateSpec renders the spec file, silently overwriting any previous one.
func stageGenerateSpec(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.generateSpecFile(); err != nil {
		return newFatalStageError(StageGenerateSpec,
			xerrors.SpecWriteFailed(bs.Generator.SpecPath(), err))
	}
	return nil
}

// stageRunPackager invokes the packaging tool against the generated spec.
func stageRunPackager(ctx context.Context, bs *BuildState) error {
	runCtx, cancel := bs.Generator.subprocessCtx(ctx)
	defer cancel()
	if err := bs.Generator.runPackager(runCtx); err != nil {
		return newFatalStageError(StageRunPackager, xerrors.PackagingFailed(err))
	}
	return nil
}

// stageVerifyOutput checks the conventional artifact path and records its size.
func stageVerifyOutput(_ context.Context, bs *BuildState) error {
	path := bs.Generator.ArtifactPath()
	size, err := bs.Generator.statSize(path)
	if err != nil {
		return newFatalStageError(StageVerifyOutput, xerrors.ArtifactMissing(path))
	}
	bs.Report.ArtifactPath = path
	bs.Report.ArtifactBytes = size
	fmt.Printf("  %s (%s)\n", path, FormatSize(size))
	slog.Info("Artifact verified", logfields.Path(path), logfields.SizeMB(float64(size)/(1024*1024)))
	return nil
}
