package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/exepack/cmd/exepack/commands"
	xerrors "git.home.luguber.info/inful/exepack/internal/errors"
	"git.home.luguber.info/inful/exepack/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("exepack"),
		kong.Description("Package the Word-to-HTML converter into a standalone executable."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	// One top-level interrupt handler; cancellation aborts the running stage
	// and surfaces as a distinct message below.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	global := &commands.Global{
		Ctx:    ctx,
		Logger: slog.Default(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}

	err := kctx.Run(global, cli)
	if err == nil {
		return
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nOperation canceled by user")
		os.Exit(1)
	}

	adapter := xerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	adapter.LogError(err)
	fmt.Fprintln(os.Stderr, adapter.FormatError(err))
	os.Exit(adapter.ExitCodeFor(err))
}
