// Package connect implements the wirecat connect command: open an outbound
// stream and pipe it to stdio.
package connect

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"wirecat/cmd/shared"
	"wirecat/pkg/config"
	"wirecat/pkg/log"
	"wirecat/pkg/pipeio"
	"wirecat/pkg/transport"
)

const categoryConnect = "connect"

const schemeFlag = "scheme"
const caFlag = "ca"

// GetCommand returns the connect command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "Connect to a listener and pipe the stream to stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Connect{
				Shared: shared.SharedConfig(cmd),
				Scheme: cmd.String(schemeFlag),
				CAFile: cmd.String(caFlag),
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
				Usage:    "Remote host",
				Category: categoryConnect,
				Required: true,
			},
			&cli.StringFlag{
				Name:     schemeFlag,
				Aliases:  []string{"s"},
				Usage:    "Connection scheme: http (plain) or https (TLS)",
				Category: categoryConnect,
				Value:    "http",
				Required: false,
			},
			&cli.StringFlag{
				Name:     caFlag,
				Usage:    "PEM CA bundle to verify the server against; without it verification is disabled",
				Category: categoryConnect,
				Value:    "",
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}

func run(cfg *config.Connect, logger *log.Logger) error {
	connector := &transport.Connector{}

	if cfg.CAFile != "" {
		verify, err := verifyAgainstCA(cfg.CAFile)
		if err != nil {
			return err
		}
		connector.Verify = verify
		logger.VerboseMsg("Verifying server certificates against %s", cfg.CAFile)
	}

	logger.InfoMsg("Connecting to %s:%d (%s)\n", cfg.Host, cfg.Port, cfg.Scheme)

	stream, err := connector.Connect(cfg.Host, cfg.Port, cfg.Scheme)
	if err != nil {
		return fmt.Errorf("connecting to %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.VerboseMsg("Established %s stream", stream.Kind())

	pipeio.Pipe(pipeio.NewStdio(), stream, func(err error) {
		logger.VerboseMsg("Relaying connection: %s", err)
	})
	return nil
}

// verifyAgainstCA builds a verification callback that checks the server's
// leaf certificate against the CA bundle at path.
func verifyAgainstCA(path string) (transport.VerifyPeerFunc, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no usable certificates in %s", path)
	}

	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return fmt.Errorf("peer presented no certificates")
		}

		cert, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return fmt.Errorf("parse certificate: %w", err)
		}

		opts := x509.VerifyOptions{Roots: roots}
		for _, raw := range rawCerts[1:] {
			intermediate, err := x509.ParseCertificate(raw)
			if err != nil {
				return fmt.Errorf("parse intermediate certificate: %w", err)
			}
			if opts.Intermediates == nil {
				opts.Intermediates = x509.NewCertPool()
			}
			opts.Intermediates.AddCert(intermediate)
		}

		if _, err := cert.Verify(opts); err != nil {
			return fmt.Errorf("verify certificate: %w", err)
		}
		return nil
	}, nil
}
