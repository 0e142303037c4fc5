/*
Copyright © 2025 Unitscope Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/unitscope/unitscope/pkg/logging"
	"github.com/unitscope/unitscope/pkg/version"
)

const name = "unitscope"

// Process exit statuses.
const (
	codeOK        = 0
	codeFailure   = 1
	codeInterrupt = 130
)

// New assembles the command tree. Running without a subcommand captures the
// report.
func New() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "inspect the per-user service manager",
		Version:               version.Version,
		EnableShellCompletion: true,
		DefaultCommand:        "report",
		Flags:                 []cli.Flag{logLevelFlag},
		Commands:              []*cli.Command{reportCmd()},
		// Exit code mapping happens in Run; keep the library from calling
		// os.Exit underneath it.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version.Version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version.Version,
				"commit", version.Commit,
				"date", version.Date)
			return ctx, nil
		},
	}
}

// Run executes the CLI and maps the outcome to a process exit status:
// 0 when the user manager is healthy, 1 on failure or unhealthy manager,
// 130 on interrupt. This is called by main.main().
func Run(ctx context.Context, args []string) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := New().Run(ctx, args)
	return exitCode(ctx, err)
}

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return codeOK
	}

	if stderrors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "interrupted")
		return codeInterrupt
	}

	var coder cli.ExitCoder
	if stderrors.As(err, &coder) {
		if msg := coder.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return coder.ExitCode()
	}

	fmt.Fprintln(os.Stderr, err)
	return codeFailure
}
