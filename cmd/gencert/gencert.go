// Package gencert implements the wirecat gencert command: write a
// self-signed certificate pair for use with listen --tls.
package gencert

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"wirecat/pkg/crypto"
)

const hostFlag = "host"
const dirFlag = "dir"

// GetCommand returns the gencert command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "gencert",
		Usage: "Generate a self-signed certificate and key in PEM format",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hosts := cmd.StringSlice(hostFlag)
			if len(hosts) == 0 {
				hosts = []string{"127.0.0.1", "localhost"}
			}

			certPEM, keyPEM, err := crypto.GenerateCertificate(hosts...)
			if err != nil {
				return fmt.Errorf("generating certificate: %w", err)
			}

			certFile, keyFile, err := crypto.WriteFiles(cmd.String(dirFlag), certPEM, keyPEM)
			if err != nil {
				return err
			}

			fmt.Println(certFile)
			fmt.Println(keyFile)
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     hostFlag,
				Usage:    "Host to include as a certificate SAN, repeatable",
				Value:    []string{},
				Required: false,
			},
			&cli.StringFlag{
				Name:     dirFlag,
				Aliases:  []string{"d"},
				Usage:    "Directory to write cert.pem and key.pem into",
				Value:    ".",
				Required: false,
			},
		},
	}
}
