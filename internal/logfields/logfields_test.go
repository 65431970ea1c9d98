package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "preflight", Stage("preflight")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Package", KeyPackage, "lxml", Package("lxml")},
		{"Command", KeyCommand, "pyinstaller", Command("pyinstaller")},
		{"Interpreter", KeyInterpreter, "python3", Interpreter("python3")},
		{"DurationMS", KeyDurationMS, "12.5", DurationMS(12.5)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) = %q, want empty", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error = %q, want boom", got)
	}
}
