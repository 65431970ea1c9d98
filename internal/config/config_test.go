package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "git.home.luguber.info/inful/exepack/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "exepack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "output:\n  name: MyConverter\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "word_to_html_converter.py", cfg.Source.Entry)
	assert.Equal(t, DefaultPackages, cfg.Source.Packages)
	assert.Equal(t, DefaultHiddenImports, cfg.Source.HiddenImports)
	assert.Equal(t, "MyConverter", cfg.Output.Name)
	assert.Equal(t, "dist", cfg.Output.Directory)
	assert.Equal(t, "word_converter.spec", cfg.Build.SpecFile)
	assert.Nil(t, cfg.Build.Cleanup)
	assert.Equal(t, time.Duration(0), cfg.Build.Timeout.Std())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")

	var ee *xerrors.ExepackError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, xerrors.CategoryConfig, ee.Category)
}

func TestLoad_NegativeTimeout(t *testing.T) {
	path := writeConfig(t, "build:\n  timeout: -5s\n")

	_, err := Load(path)
	require.Error(t, err)

	var ee *xerrors.ExepackError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, xerrors.CategoryValidation, ee.Category)
	assert.Equal(t, "build.timeout", ee.Context["field"])
}

func TestLoad_Timeout(t *testing.T) {
	path := writeConfig(t, "build:\n  timeout: 5m\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Build.Timeout.Std())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, "build:\n  timeout: soon\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CONVERTER_NAME", "EnvConverter")
	path := writeConfig(t, "output:\n  name: ${CONVERTER_NAME}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EnvConverter", cfg.Output.Name)
}

func TestLoad_ExplicitCleanup(t *testing.T) {
	path := writeConfig(t, "build:\n  cleanup: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Build.Cleanup)
	assert.False(t, *cfg.Build.Cleanup)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "word_to_html_converter.py", cfg.Source.Entry)
	require.NoError(t, cfg.Validate())
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exepack.yaml")

	require.NoError(t, Init(path, false))

	// Second init without force must refuse to overwrite.
	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WordToHtmlConverter", cfg.Output.Name)
	assert.Equal(t, DefaultPackages, cfg.Source.Packages)
}
