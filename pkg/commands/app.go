package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/commands/internal/options"
)

// NewApp returns the root command with the common flags wired.
func NewApp() *cli.Command {
	common := options.NewCommonOptions()
	return &cli.Command{
		Name:                  "imgremap",
		Usage:                 "imgremap rewrites container image registries through a prefix mapping",
		Suggest:               true,
		EnableShellCompletion: true,
		HideVersion:           true,
		HideHelpCommand:       true,
		Flags:                 common.Flags(),
		Before: func(_ context.Context, _ *cli.Command) error {
			common.ApplyLogger()
			return nil
		},
	}
}
