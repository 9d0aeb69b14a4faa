// Package serve implements the webhook server command.
package serve

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/cmdhelper"
	"github.com/imgremap/imgremap/pkg/commands/internal/options"
	"github.com/imgremap/imgremap/pkg/settings"
	"github.com/imgremap/imgremap/pkg/webhook"
	"github.com/imgremap/imgremap/pkg/xlog"
)

const shutdownTimeout = 5 * time.Second

// New creates a new Command with default values.
func New() *Command {
	return &Command{
		ServerOptions: options.NewServerOptions(),
	}
}

// Command is the command to start the mutating-webhook server.
type Command struct {
	ServerOptions *options.ServerOptions
	SettingsPath  string
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the mutating-webhook server",
		UsageText: `imgremap serve [OPTIONS]

# Start the webhook with a settings file and TLS
$ imgremap serve --settings /etc/imgremap/settings.yaml \
    --tls-cert /etc/imgremap/tls.crt --tls-key /etc/imgremap/tls.key

# Start without TLS on a custom port, for local testing
$ imgremap serve --settings settings.yaml --port 9443
`,
		Flags:  c.Flags(),
		Before: cli.BeforeFunc(cmdhelper.NoArgs()),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "settings",
			Aliases:     []string{"s"},
			Usage:       "path to the settings file with remap rules",
			Sources:     cli.EnvVars("IMGREMAP_SETTINGS"),
			Destination: &c.SettingsPath,
		},
	}
	flags = append(flags, c.ServerOptions.Flags()...)
	return flags
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	if err := c.ServerOptions.Validate(); err != nil {
		return err
	}

	var s settings.Settings
	if c.SettingsPath != "" {
		loaded, err := settings.LoadFile(c.SettingsPath)
		if err != nil {
			return err
		}
		s = loaded
	}
	rules := s.EffectiveRules()
	if len(rules) == 0 {
		xlog.C(ctx).Warn("remap mapping is empty, the webhook will only canonicalize images")
	}

	address := c.ServerOptions.Address()
	xlog.C(ctx).Infof("Starting webhook server %s", address)

	srv := &http.Server{
		Addr:              address,
		Handler:           webhook.NewMutator(rules).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if c.ServerOptions.TLSEnabled() {
			err = srv.ListenAndServeTLS(c.ServerOptions.TLSCertFile, c.ServerOptions.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	cmdhelper.Fprintf(cmd.Writer, "Webhook server started at %s\n", address)

	select {
	case err := <-errCh:
		xlog.C(ctx).Error("Server error", "error", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		xlog.C(ctx).Error("Server shutdown failed", "error", err)
		return err
	}

	xlog.C(ctx).Info("Server stopped")
	return nil
}
