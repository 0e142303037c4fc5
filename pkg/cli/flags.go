/*
Copyright © 2025 Unitscope Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/unitscope/unitscope/pkg/serializer"
)

// defaultExportPath is where --json puts the report when --output is not
// given.
const defaultExportPath = "user_process_mgmt.json"

// Flags shared across commands.
var (
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Value:   "warn",
		Sources: cli.EnvVars("UNITSCOPE_LOG_LEVEL", "LOG_LEVEL"),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "export file path (implies export)",
		Sources: cli.EnvVars("UNITSCOPE_OUTPUT"),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "export format (json, yaml, table)",
		Value:   string(serializer.FormatJSON),
		Sources: cli.EnvVars("UNITSCOPE_FORMAT"),
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: fmt.Sprintf("export the report (default path %s)", defaultExportPath),
	}

	sampleFlag = &cli.BoolFlag{
		Name:  "sample",
		Usage: "write a sample service unit and print practice commands",
	}

	noColorFlag = &cli.BoolFlag{
		Name:    "no-color",
		Usage:   "disable colored output",
		Sources: cli.EnvVars("NO_COLOR"),
	}
)

// parseOutputFormat validates the --format flag value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)",
			format, serializer.SupportedFormats())
	}
	return format, nil
}
