package python

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/exepack/internal/logfields"
)

// EnvInterpreter overrides interpreter resolution when set.
const EnvInterpreter = "EXEPACK_PYTHON"

// Interpreter is a resolved Python executable plus the Runner used to invoke it.
type Interpreter struct {
	Path   string
	runner Runner
}

// Resolve locates the Python executable. Precedence: explicit override,
// EXEPACK_PYTHON, then python3/python on PATH.
func Resolve(override string) (string, error) {
	candidates := []string{override, os.Getenv(EnvInterpreter), "python3", "python"}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		path, err := exec.LookPath(c)
		if err != nil {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("no python interpreter found on PATH")
}

// NewInterpreter resolves the interpreter and wraps it with the given Runner.
// A nil runner defaults to ExecRunner.
func NewInterpreter(override string, runner Runner) (*Interpreter, error) {
	path, err := Resolve(override)
	if err != nil {
		return nil, err
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	slog.Debug("Resolved python interpreter", logfields.Interpreter(path))
	return &Interpreter{Path: path, runner: runner}, nil
}

// WithRunner returns an Interpreter using the provided path and runner
// without PATH resolution (test seam).
func WithRunner(path string, runner Runner) *Interpreter {
	return &Interpreter{Path: path, runner: runner}
}

// CheckImport reports whether the module is importable by the interpreter.
func (i *Interpreter) CheckImport(ctx context.Context, module string) bool {
	err := i.runner.RunQuiet(ctx, i.Path, "-c", fmt.Sprintf("import %s", module))
	return err == nil
}

// Install installs the given distribution packages in a single pip call.
func (i *Interpreter) Install(ctx context.Context, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"-m", "pip", "install"}, packages...)
	slog.Info("Installing packages", logfields.Command("pip install "+strings.Join(packages, " ")))
	if err := i.runner.Run(ctx, i.Path, args...); err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}
	return nil
}

// importNames maps distribution package names to their import names where
// the two differ.
var importNames = map[string]string{
	"python-docx":    "docx",
	"beautifulsoup4": "bs4",
	"pyinstaller":    "PyInstaller",
}

// ImportName returns the module name used to probe a distribution package.
func ImportName(pkg string) string {
	if name, ok := importNames[strings.ToLower(pkg)]; ok {
		return name
	}
	return strings.ReplaceAll(pkg, "-", "_")
}

// MissingPackages probes every package and returns the unresolved subset in
// input order. It never stops at the first failure.
func (i *Interpreter) MissingPackages(ctx context.Context, packages []string) []string {
	var missing []string
	for _, pkg := range packages {
		if i.CheckImport(ctx, ImportName(pkg)) {
			slog.Debug("Package present", logfields.Package(pkg))
			continue
		}
		slog.Debug("Package missing", logfields.Package(pkg))
		missing = append(missing, pkg)
	}
	return missing
}
