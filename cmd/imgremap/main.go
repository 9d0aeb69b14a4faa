// Package main is the entry of the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/cmdhelper"
	"github.com/imgremap/imgremap/pkg/commands"
	"github.com/imgremap/imgremap/pkg/commands/serve"
)

func main() {
	app := commands.NewApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Commands = []*cli.Command{
		commands.NewVersionCommand().ToCLI(),
		commands.NewRewriteCommand().ToCLI(),
		serve.New().ToCLI(),
	}
	app.ExitErrHandler = func(ctx context.Context, c *cli.Command, err error) {
		cli.HandleExitCoder(err)
		cmdhelper.Fprintf(c.ErrWriter, "Error: %+v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // already checked in root command ExitErrHandler
	_ = app.Run(ctx, os.Args)
}
