package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage       = "stage"
	KeyPath        = "path"
	KeyPackage     = "package"
	KeyPackages    = "packages"
	KeyCommand     = "command"
	KeyInterpreter = "interpreter"
	KeyDurationMS  = "duration_ms"
	KeySizeMB      = "size_mb"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Package(name string) slog.Attr    { return slog.String(KeyPackage, name) }
func Packages(n int) slog.Attr         { return slog.Int(KeyPackages, n) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func Interpreter(p string) slog.Attr   { return slog.String(KeyInterpreter, p) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func SizeMB(mb float64) slog.Attr      { return slog.Float64(KeySizeMB, mb) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
