package bundle

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/exepack/internal/logfields"
)

// specTemplate is the packager spec descriptor. Downstream tooling accepts
// exactly this layout; only the entry script, hidden imports, and product
// name vary.
const specTemplate = `# -*- mode: python ; coding: utf-8 -*-

block_cipher = None

a = Analysis(
    ['{{.Entry}}'],
    pathex=[],
    binaries=[],
    datas=[],
    hiddenimports=[{{.HiddenImports}}],
    hookspath=[],
    hooksconfig={},
    runtime_hooks=[],
    excludes=[],
    win_no_prefer_redirects=False,
    win_private_assemblies=False,
    cipher=block_cipher,
    noarchive=False,
)

pyz = PYZ(a.pure, a.zipped_data, cipher=block_cipher)

exe = EXE(
    pyz,
    a.scripts,
    a.binaries,
    a.zipfiles,
    a.datas,
    [],
    name='{{.Name}}',
    debug=False,
    bootloader_ignore_signals=False,
    strip=False,
    upx=True,
    upx_exclude=[],
    runtime_tmpdir=None,
    console=False,
    disable_windowed_traceback=False,
    target_arch=None,
    codesign_identity=None,
    entitlements_file=None,
    icon=None,
)
`

type specContext struct {
	Entry         string
	HiddenImports string
	Name          string
}

// RenderSpec produces the spec file contents. Rendering is deterministic:
// identical inputs yield byte-identical output.
func RenderSpec(entry string, hiddenImports []string, name string) ([]byte, error) {
	quoted := make([]string, len(hiddenImports))
	for i, imp := range hiddenImports {
		quoted[i] = fmt.Sprintf("'%s'", imp)
	}
	tpl, err := template.New("specfile").Parse(specTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse spec template: %w", err)
	}
	var buf bytes.Buffer
	err = tpl.Execute(&buf, specContext{
		Entry:         entry,
		HiddenImports: strings.Join(quoted, ", "),
		Name:          name,
	})
	if err != nil {
		return nil, fmt.Errorf("exec spec template: %w", err)
	}
	return buf.Bytes(), nil
}

// generateSpecFile writes the rendered spec descriptor, overwriting any
// previous one without merging.
func (g *Generator) generateSpecFile() error {
	data, err := RenderSpec(g.config.Source.Entry, g.config.Source.HiddenImports, g.config.Output.Name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.SpecPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}
	slog.Info("Generated spec file", logfields.Path(g.SpecPath()))
	return nil
}
