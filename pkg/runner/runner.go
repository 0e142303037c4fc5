// Copyright (c) 2025, Unitscope Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runner executes external commands with a bounded timeout and
// returns captured output plus exit status as plain values. Nonzero exits,
// timeouts, and spawn failures are ordinary results for the caller to
// interpret, never errors.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every command invocation.
const DefaultTimeout = 30 * time.Second

// CodeTimeout is the sentinel exit code reported when a command exceeds its
// timeout, distinct from any normal nonzero exit.
const CodeTimeout = 124

// Result is the outcome of a command invocation.
type Result struct {
	// Output is the captured, whitespace-trimmed standard output, or an
	// explanatory message on timeout/spawn failure.
	Output string
	// Code is the command exit code, CodeTimeout on timeout, or 1 on any
	// spawn failure.
	Code int
}

// OK reports whether the command exited zero.
func (r Result) OK() bool {
	return r.Code == 0
}

// TimedOut reports whether the command hit the timeout sentinel.
func (r Result) TimedOut() bool {
	return r.Code == CodeTimeout
}

// Runner invokes external commands. The zero value is usable and applies
// DefaultTimeout.
type Runner struct {
	// Timeout bounds each invocation; DefaultTimeout when zero.
	Timeout time.Duration

	// euid reports the invoking process's effective uid. Overridable in tests.
	euid func() int
}

// New creates a Runner with the given per-command timeout.
// A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Run executes the command and blocks until it completes or times out.
// It never returns an error: a timeout yields (message, CodeTimeout), a
// spawn failure yields (message, 1), and a nonzero exit yields the captured
// output with that exit code.
func (r *Runner) Run(ctx context.Context, name string, args ...string) Result {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Debug("running command", "command", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(cctx, name, args...)
	out, err := cmd.Output()
	output := strings.TrimSpace(string(out))

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		slog.Warn("command timed out", "command", name, "timeout", timeout)
		return Result{
			Output: fmt.Sprintf("command timed out: %s", commandLine(name, args)),
			Code:   CodeTimeout,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Output: output, Code: exitErr.ExitCode()}
		}
		slog.Debug("command failed to start", "command", name, "error", err)
		return Result{Output: err.Error(), Code: 1}
	}

	return Result{Output: output, Code: 0}
}

// RunAsUser executes the command inside the session of the user owning uid.
// When the invoking process already runs as that uid the command executes
// directly; otherwise it is wrapped in a transient user-scoped service so it
// sees that user's manager instead of the caller's.
func (r *Runner) RunAsUser(ctx context.Context, uid int, name string, args ...string) Result {
	if r.effectiveUID() == uid {
		return r.Run(ctx, name, args...)
	}

	wrappedName, wrappedArgs := wrapUserCommand(name, args)
	return r.Run(ctx, wrappedName, wrappedArgs...)
}

// wrapUserCommand rewrites an invocation to run inside the target user's
// session via a transient unit.
func wrapUserCommand(name string, args []string) (string, []string) {
	return "systemd-run", append([]string{"--user", "--wait", "--pipe", name}, args...)
}

func (r *Runner) effectiveUID() int {
	if r.euid != nil {
		return r.euid()
	}
	return os.Geteuid()
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
