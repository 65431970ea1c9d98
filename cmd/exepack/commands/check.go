package commands

import (
	"fmt"

	"git.home.luguber.info/inful/exepack/internal/bundle"
)

// CheckCmd implements the 'check' command: preflight plus tool and
// dependency probes, never the packager.
type CheckCmd struct {
	Install bool `default:"true" negatable:"" help:"Install the packaging tool and missing packages (--no-install to report only)"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen := bundle.NewGenerator(cfg, ".", nil)
	report, err := gen.Check(g.Ctx, c.Install)
	if err != nil {
		return err
	}

	if len(report.InstalledPackages) > 0 {
		fmt.Fprintf(g.Stdout, "Installed %d missing package(s)\n", len(report.InstalledPackages))
	}
	fmt.Fprintln(g.Stdout, "Environment ready for packaging")
	return nil
}
