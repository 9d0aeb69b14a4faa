package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/cmdhelper"
	"github.com/imgremap/imgremap/pkg/errdefs"
	"github.com/imgremap/imgremap/pkg/remap"
	"github.com/imgremap/imgremap/pkg/settings"
)

// NewRewriteCommand returns a rewrite command with default values.
func NewRewriteCommand() *RewriteCommand {
	return &RewriteCommand{}
}

// RewriteCommand remaps image references from the command line, without any
// admission machinery. Useful to preview what the webhook would do.
type RewriteCommand struct {
	Mappings     []string
	SettingsPath string
}

// ToCLI transforms to a *cli.Command.
func (c *RewriteCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Canonicalize and remap image references",
		ArgsUsage: "IMAGE [IMAGE...]",
		UsageText: `imgremap rewrite [OPTIONS] IMAGE [IMAGE...]

# Canonicalize only
$ imgremap rewrite alpine:3.10

# Remap with inline mappings, order is significant
$ imgremap rewrite --map quay.io=quay.mirror.example.com quay.io/foo/bar

# Remap with a settings file
$ imgremap rewrite --settings settings.yaml alpine
`,
		Flags:  c.Flags(),
		Before: cli.BeforeFunc(cmdhelper.MinimumNArgs(1)),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *RewriteCommand) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "map",
			Aliases:     []string{"m"},
			Usage:       "mapping as 'source=destination', repeatable, first match wins",
			Destination: &c.Mappings,
		},
		&cli.StringFlag{
			Name:        "settings",
			Aliases:     []string{"s"},
			Usage:       "path to a settings file with remap rules",
			Sources:     cli.EnvVars("IMGREMAP_SETTINGS"),
			Destination: &c.SettingsPath,
		},
	}
}

// Run is the main function for the current command.
func (c *RewriteCommand) Run(_ context.Context, cmd *cli.Command) error {
	rules, err := c.rules()
	if err != nil {
		return err
	}
	for _, image := range cmd.Args().Slice() {
		cmdhelper.Fprintf(cmd.Writer, "%s", rules.Rewrite(image))
	}
	return nil
}

func (c *RewriteCommand) rules() (remap.Rules, error) {
	rules := make(remap.Rules, 0, len(c.Mappings))
	for _, mapping := range c.Mappings {
		source, destination, ok := strings.Cut(mapping, "=")
		if !ok || source == "" {
			return nil, errdefs.Newf(errdefs.ErrInvalidParameter,
				"invalid mapping %q, expected 'source=destination'", mapping)
		}
		rules = append(rules, remap.Rule{Source: source, Destination: destination})
	}
	if c.SettingsPath != "" {
		s, err := settings.LoadFile(c.SettingsPath)
		if err != nil {
			return nil, err
		}
		rules = append(rules, s.EffectiveRules()...)
	}
	return rules, nil
}
