package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/glossgen/cmd/glossgen/commands"
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
	"git.home.luguber.info/inful/glossgen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("glossgen"),
		kong.Description("Generate a cross-linked HTML glossary from a term/definition text file."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(commands.NewGlobal(ctx), cli)
	cancel()

	if err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
