package bundle

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/exepack/internal/config"
)

func TestRenderSpec_Deterministic(t *testing.T) {
	cfg := config.Default()

	first, err := RenderSpec(cfg.Source.Entry, cfg.Source.HiddenImports, cfg.Output.Name)
	require.NoError(t, err)
	second, err := RenderSpec(cfg.Source.Entry, cfg.Source.HiddenImports, cfg.Output.Name)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rendering must be byte-for-byte reproducible")
}

func TestRenderSpec_OnlyNameVaries(t *testing.T) {
	cfg := config.Default()

	a, err := RenderSpec(cfg.Source.Entry, cfg.Source.HiddenImports, "ConverterA")
	require.NoError(t, err)
	b, err := RenderSpec(cfg.Source.Entry, cfg.Source.HiddenImports, "ConverterB")
	require.NoError(t, err)

	diff := strings.ReplaceAll(string(b), "ConverterB", "ConverterA")
	assert.Equal(t, string(a), diff, "outputs must differ only in the substituted name")
}

func TestRenderSpec_Contents(t *testing.T) {
	got, err := RenderSpec("word_to_html_converter.py",
		[]string{"docx", "bs4"}, "WordToHtmlConverter")
	require.NoError(t, err)

	s := string(got)
	assert.Contains(t, s, "['word_to_html_converter.py'],")
	assert.Contains(t, s, "hiddenimports=['docx', 'bs4'],")
	assert.Contains(t, s, "name='WordToHtmlConverter',")
	// Fixed output options.
	assert.Contains(t, s, "console=False,")
	assert.Contains(t, s, "upx=True,")
	assert.Contains(t, s, "icon=None,")
	assert.Contains(t, s, "cipher=block_cipher,")
	assert.True(t, strings.HasPrefix(s, "# -*- mode: python ; coding: utf-8 -*-\n"))
}

func TestGenerateSpecFile_OverwritesSilently(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	g := NewGenerator(cfg, dir, nil)

	require.NoError(t, os.WriteFile(g.SpecPath(), []byte("stale"), 0o644))
	require.NoError(t, g.generateSpecFile())

	data, err := os.ReadFile(g.SpecPath())
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
	assert.Contains(t, string(data), "name='WordToHtmlConverter',")
}
