package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"wirecat/cmd/connect"
	"wirecat/cmd/gencert"
	"wirecat/cmd/listen"
	"wirecat/cmd/version"
)

func main() {
	app := &cli.Command{
		Name:  "wirecat",
		Usage: "pipe bytes over plain or TLS TCP streams",
		Commands: []*cli.Command{
			listen.GetCommand(),
			connect.GetCommand(),
			gencert.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("[!] Error: %s\n", err)
	}
}
