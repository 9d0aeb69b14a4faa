// Package options defines shared cli flag groups for the commands.
package options

import (
	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/xlog"
)

// NewCommonOptions returns a *CommonOptions with default values.
func NewCommonOptions() *CommonOptions {
	return &CommonOptions{}
}

// CommonOptions are options that are common to all commands.
type CommonOptions struct {
	Debug   bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *CommonOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Sources:     cli.EnvVars("IMGREMAP_DEBUG"),
			Usage:       "enable debug mode",
			Destination: &o.Debug,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Sources:     cli.EnvVars("IMGREMAP_LOG_FILE"),
			Usage:       "write json logs to the given file with rotation",
			Destination: &o.LogFile,
		},
	}
}

// ApplyLogger installs the default logger configured by the options.
func (o *CommonOptions) ApplyLogger() {
	c := xlog.NewConfig()
	if o.Debug {
		c.Level = xlog.LevelDebug
	}
	c.Path = o.LogFile
	xlog.SetDefault(xlog.New(c))
}
