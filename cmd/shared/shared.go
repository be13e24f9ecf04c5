// Package shared provides common CLI flag definitions used across wirecat's
// command-line interface.
package shared

import (
	"wirecat/pkg/config"
	"wirecat/pkg/log"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// HostFlag is the name of the flag specifying the host.
const HostFlag = "host"

// PortFlag is the name of the flag specifying the port.
const PortFlag = "port"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// GetCommonFlags returns the CLI flags used by both listen and connect.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     PortFlag,
			Aliases:  []string{"p"},
			Usage:    "TCP port",
			Category: categoryCommon,
			Required: true,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose error logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
	}
}

// ReportValidationErrors logs all validation errors and reports whether any
// were present.
func ReportValidationErrors(errs []error, logger *log.Logger) bool {
	if len(errs) == 0 {
		return false
	}

	logger.ErrorMsg("Argument validation errors:\n")
	for _, err := range errs {
		logger.ErrorMsg(" - %s\n", err)
	}
	return true
}

// SharedConfig builds the shared config from parsed flags.
func SharedConfig(cmd *cli.Command) config.Shared {
	return config.Shared{
		Host:    cmd.String(HostFlag),
		Port:    int(cmd.Int(PortFlag)),
		Verbose: cmd.Bool(VerboseFlag),
	}
}
