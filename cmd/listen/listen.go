// Package listen implements the wirecat listen command: bind an address,
// accept one stream, and pipe it to stdio.
package listen

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"wirecat/cmd/shared"
	"wirecat/pkg/config"
	"wirecat/pkg/format"
	"wirecat/pkg/log"
	"wirecat/pkg/pipeio"
	"wirecat/pkg/transport"
)

const categoryListen = "listen"

const tlsFlag = "tls"
const certFlag = "cert"
const keyFlag = "key"

// GetCommand returns the listen command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "Listen for a connection and pipe it to stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Listen{
				Shared:   shared.SharedConfig(cmd),
				TLS:      cmd.Bool(tlsFlag),
				CertFile: cmd.String(certFlag),
				KeyFile:  cmd.String(keyFlag),
			}

			logger := log.NewLogger(cfg.Verbose)
			if shared.ReportValidationErrors(cfg.Validate(), logger) {
				return fmt.Errorf("exiting")
			}

			return run(&cfg, logger)
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     shared.HostFlag,
				Usage:    "Local interface, leave empty for all interfaces",
				Category: categoryListen,
				Value:    "",
				Required: false,
			},
			&cli.BoolFlag{
				Name:     tlsFlag,
				Usage:    "Accept TLS connections, requires --cert and --key",
				Category: categoryListen,
				Value:    false,
				Required: false,
			},
			&cli.StringFlag{
				Name:     certFlag,
				Usage:    "PEM certificate file for --tls",
				Category: categoryListen,
				Value:    "",
				Required: false,
			},
			&cli.StringFlag{
				Name:     keyFlag,
				Usage:    "PEM private key file for --tls",
				Category: categoryListen,
				Value:    "",
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}

func run(cfg *config.Listen, logger *log.Logger) error {
	addr := format.Addr(cfg.Host, cfg.Port)

	var listener *transport.Listener
	var err error
	if cfg.TLS {
		listener, err = transport.BindTLS(addr, cfg.CertFile, cfg.KeyFile, nil)
	} else {
		listener, err = transport.Bind(addr, nil)
	}
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}

	acceptor, err := listener.Listen()
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer acceptor.Close()

	if bound, err := acceptor.SocketName(); err == nil {
		logger.InfoMsg("Listening on %s\n", bound)
	}

	// Per-connection handshake failures do not invalidate the acceptor, so
	// keep accepting until a stream comes through.
	var stream *transport.Stream
	for {
		stream, err = acceptor.Accept()
		if err == nil {
			break
		}
		if !transport.IsConnectionError(err) {
			return fmt.Errorf("accepting on %s: %w", addr, err)
		}
		logger.ErrorMsg("Accepting connection: %s\n", err)
		logger.VerboseMsg("Waiting for the next connection")
	}

	if peer, err := stream.PeerName(); err == nil {
		logger.InfoMsg("New %s connection from %s\n", stream.Kind(), peer)
	}

	pipeio.Pipe(pipeio.NewStdio(), stream, func(err error) {
		logger.VerboseMsg("Relaying connection: %s", err)
	})
	return nil
}
