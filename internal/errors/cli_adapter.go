package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation for the CLI. The process exit
// contract is flat: zero on success, one on any failure path.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the process exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ee *ExepackError
	if errors.As(err, &ee) {
		return a.formatExepack(ee)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatExepack formats an ExepackError for display.
func (a *CLIErrorAdapter) formatExepack(err *ExepackError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation, CategorySource:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// LogError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) LogError(err error) {
	var ee *ExepackError
	if errors.As(err, &ee) {
		level := slogLevelFromSeverity(ee.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(ee.Category)),
		}
		a.logger.LogAttrs(nil, level, ee.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts ExepackError severity to slog level.
func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityFatal, SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
