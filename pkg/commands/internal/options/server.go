package options

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/errdefs"
)

const (
	// ServerFlagCategory is the category of the server flags.
	ServerFlagCategory = "[Server]"

	// DefaultServerPort is the default port for the server to listen on.
	DefaultServerPort int64 = 8443

	// DefaultServerHost is the default host for the server to listen on.
	DefaultServerHost = "0.0.0.0"
)

// NewServerOptions returns a new *ServerOptions with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Port: DefaultServerPort,
		Host: DefaultServerHost,
	}
}

// ServerOptions defines the options for the webhook server.
type ServerOptions struct {
	// Port is the port for the server to listen on.
	Port int64

	// Host is the host for the server to listen on.
	Host string

	// TLSCertFile and TLSKeyFile enable TLS when both are set. The
	// apiserver only talks to webhooks over https, plain http is for
	// local testing behind a terminating proxy.
	TLSCertFile string
	TLSKeyFile  string
}

// Flags returns the []cli.Flag related to current options.
func (o *ServerOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "port to listen on",
			Sources:     cli.EnvVars("IMGREMAP_SERVER_PORT"),
			Value:       o.Port,
			Destination: &o.Port,
			Category:    ServerFlagCategory,
		},
		&cli.StringFlag{
			Name:        "host",
			Usage:       "host to listen on",
			Sources:     cli.EnvVars("IMGREMAP_SERVER_HOST"),
			Value:       o.Host,
			Destination: &o.Host,
			Category:    ServerFlagCategory,
		},
		&cli.StringFlag{
			Name:        "tls-cert",
			Usage:       "path to the TLS certificate file",
			Sources:     cli.EnvVars("IMGREMAP_TLS_CERT"),
			Destination: &o.TLSCertFile,
			Category:    ServerFlagCategory,
		},
		&cli.StringFlag{
			Name:        "tls-key",
			Usage:       "path to the TLS private key file",
			Sources:     cli.EnvVars("IMGREMAP_TLS_KEY"),
			Destination: &o.TLSKeyFile,
			Category:    ServerFlagCategory,
		},
	}
}

// Address returns the server address format as host:port.
func (o *ServerOptions) Address() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// TLSEnabled reports whether both TLS files are configured.
func (o *ServerOptions) TLSEnabled() bool {
	return o.TLSCertFile != "" && o.TLSKeyFile != ""
}

// Validate checks the option combination.
func (o *ServerOptions) Validate() error {
	if (o.TLSCertFile == "") != (o.TLSKeyFile == "") {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "tls-cert and tls-key must be set together")
	}
	return nil
}
