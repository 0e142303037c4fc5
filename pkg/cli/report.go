/*
Copyright © 2025 Unitscope Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/identity"
	"github.com/unitscope/unitscope/pkg/render"
	"github.com/unitscope/unitscope/pkg/report"
	"github.com/unitscope/unitscope/pkg/runner"
	"github.com/unitscope/unitscope/pkg/sample"
	"github.com/unitscope/unitscope/pkg/serializer"
	"github.com/unitscope/unitscope/pkg/version"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "report",
		EnableShellCompletion: true,
		Usage:                 "Capture and display the user service-manager report",
		Description: `Inspect the current user's service manager and print a report covering:
  - unit-definition directories and their unit-file counts
  - registered services and sockets with runtime and enablement states
  - timer schedules
  - the manager's own status and health
  - login sessions, linger, and control-group tallies

The exit status is 0 only when the user manager is classified running.

# Examples

Terminal report only:
  unitscope report

Export alongside the terminal report:
  unitscope report --json
  unitscope report --output status.yaml --format yaml

Create a practice unit:
  unitscope report --sample`,
		Flags: []cli.Flag{
			jsonFlag,
			outputFlag,
			formatFlag,
			sampleFlag,
			noColorFlag,
		},
		Action: runReport,
	}
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	r := runner.New(runner.DefaultTimeout)
	if _, err := collector.ValidateEnvironment(ctx, r); err != nil {
		return err
	}

	builder := &report.Builder{
		Version: version.Version,
		Factory: collector.NewDefaultFactory(collector.WithRunner(r)),
	}
	rep, err := builder.Capture(ctx)
	if err != nil {
		return err
	}

	render.New(out, cmd.Bool("no-color")).Render(rep)

	if cmd.Bool("sample") {
		if err := writeSample(out); err != nil {
			return err
		}
	}

	exportIfRequested(ctx, cmd, rep)

	if !rep.Healthy() {
		return cli.Exit("", codeFailure)
	}
	return nil
}

// exportIfRequested writes the report to disk when --json or --output was
// given. An export failure is reported to the operator but never changes
// the run's exit classification, which follows manager health alone.
func exportIfRequested(ctx context.Context, cmd *cli.Command, rep *report.Report) {
	if !cmd.Bool("json") && cmd.String("output") == "" {
		return
	}
	if err := exportReport(ctx, cmd, rep); err != nil {
		fmt.Fprintf(cmd.Root().Writer, "Failed to export report: %v\n", err)
	}
}

func exportReport(ctx context.Context, cmd *cli.Command, rep *report.Report) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		path = defaultExportPath
	}

	w, err := serializer.NewFileWriter(format, path)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Serialize(ctx, rep); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Report exported to %s\n", path)
	return nil
}

func writeSample(out io.Writer) error {
	id, err := identity.Resolve()
	if err != nil {
		return err
	}

	path, err := sample.Write(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n\n", path)
	sample.PrintHints(out, id)
	return nil
}
