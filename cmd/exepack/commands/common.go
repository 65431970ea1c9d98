package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/exepack/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"exepack.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Run the full packaging workflow"`
	Check CheckCmd `cmd:"" help:"Verify source, packaging tool, and dependencies without packaging"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
	Clean CleanCmd `cmd:"" help:"Remove transient build directories and the generated spec file"`
	Watch WatchCmd `cmd:"" help:"Rebuild whenever the entry script changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file, falling back to built-in defaults
// when no file exists at the default location.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("No configuration file, using defaults", "path", path)
		return config.Default(), nil
	}
	return config.Load(path)
}

// affirmativeTokens are the accepted confirmation answers, matched
// case-insensitively.
var affirmativeTokens = []string{"y", "yes", "是"}

// Confirm prints the prompt and reads one line; any affirmative token
// accepts, everything else declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/n): ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return IsAffirmative(line)
}

// IsAffirmative reports whether the answer is one of the accepted
// confirmation tokens.
func IsAffirmative(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, tok := range affirmativeTokens {
		if answer == tok {
			return true
		}
	}
	return false
}

// Pause blocks until the operator presses Enter.
func Pause(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to exit...")
	reader := bufio.NewReader(in)
	_, _ = reader.ReadString('\n')
}
