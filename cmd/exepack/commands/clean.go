package commands

import (
	"fmt"

	"git.home.luguber.info/inful/exepack/internal/bundle"
)

// CleanCmd implements the 'clean' command. Removal is idempotent: targets
// already absent are skipped silently.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen := bundle.NewGenerator(cfg, ".", nil)
	removed, err := gen.Cleanup()
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(g.Stdout, "Nothing to clean")
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(g.Stdout, "Removed %s\n", path)
	}
	return nil
}
