package python

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and fails commands matched by failOn.
type fakeRunner struct {
	calls  [][]string
	failOn func(args []string) bool
}

func (f *fakeRunner) run(name string, args []string) error {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	if f.failOn != nil && f.failOn(call) {
		return fmt.Errorf("exit status 1")
	}
	return nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	return f.run(name, args)
}

func (f *fakeRunner) RunQuiet(_ context.Context, name string, args ...string) error {
	return f.run(name, args)
}

func (f *fakeRunner) RunIn(_ context.Context, _ string, name string, args ...string) error {
	return f.run(name, args)
}

func TestImportName(t *testing.T) {
	cases := map[string]string{
		"python-docx":    "docx",
		"beautifulsoup4": "bs4",
		"mammoth":        "mammoth",
		"lxml":           "lxml",
		"pyinstaller":    "PyInstaller",
		"some-package":   "some_package",
	}
	for pkg, want := range cases {
		assert.Equal(t, want, ImportName(pkg), pkg)
	}
}

func TestMissingPackages_ChecksEveryPackage(t *testing.T) {
	// docx and lxml fail; probing must continue past the first failure.
	runner := &fakeRunner{failOn: func(call []string) bool {
		stmt := call[len(call)-1]
		return stmt == "import docx" || stmt == "import lxml"
	}}
	interp := WithRunner("python3", runner)

	missing := interp.MissingPackages(context.Background(),
		[]string{"python-docx", "mammoth", "beautifulsoup4", "lxml"})

	assert.Equal(t, []string{"python-docx", "lxml"}, missing)
	assert.Len(t, runner.calls, 4, "all four packages must be probed")
}

func TestInstall_SingleBatchCall(t *testing.T) {
	runner := &fakeRunner{}
	interp := WithRunner("python3", runner)

	require.NoError(t, interp.Install(context.Background(), "python-docx", "lxml"))

	require.Len(t, runner.calls, 1, "install must be one batch pip call")
	assert.Equal(t, []string{"python3", "-m", "pip", "install", "python-docx", "lxml"}, runner.calls[0])
}

func TestInstall_NoPackagesIsNoop(t *testing.T) {
	runner := &fakeRunner{}
	interp := WithRunner("python3", runner)

	require.NoError(t, interp.Install(context.Background()))
	assert.Empty(t, runner.calls)
}

func TestInstall_Failure(t *testing.T) {
	runner := &fakeRunner{failOn: func(call []string) bool {
		return strings.Contains(strings.Join(call, " "), "pip install")
	}}
	interp := WithRunner("python3", runner)

	err := interp.Install(context.Background(), "lxml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip install failed")
}

func TestCheckImport(t *testing.T) {
	runner := &fakeRunner{failOn: func(call []string) bool {
		return call[len(call)-1] == "import nothere"
	}}
	interp := WithRunner("python3", runner)

	assert.True(t, interp.CheckImport(context.Background(), "docx"))
	assert.False(t, interp.CheckImport(context.Background(), "nothere"))
}
