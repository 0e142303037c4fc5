package collector

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/unitscope/unitscope/pkg/errors"
	"github.com/unitscope/unitscope/pkg/version"
)

// ValidateEnvironment verifies the host can be inspected at all: Linux only,
// with a working systemctl. Failure here is fatal for the whole run. On
// success it returns the detected manager version, or 0 when the banner
// could not be parsed (a warning, not an error).
func ValidateEnvironment(ctx context.Context, r Runner) (int, error) {
	return validateEnvironment(ctx, r, runtime.GOOS)
}

func validateEnvironment(ctx context.Context, r Runner, goos string) (int, error) {
	if goos != "linux" {
		return 0, errors.New(errors.ErrCodeUnavailable, "this tool only works on Linux systems")
	}

	res := r.Run(ctx, "systemctl", "--version")
	if !res.OK() {
		return 0, errors.NewWithContext(errors.ErrCodeUnavailable,
			"systemd not found or not accessible",
			map[string]any{"code": res.Code, "output": res.Output})
	}

	v, err := version.ParseManagerVersion(res.Output)
	if err != nil {
		slog.Warn("could not parse systemd version banner", "error", err)
		return 0, nil
	}
	return v, nil
}
