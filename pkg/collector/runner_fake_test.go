package collector

import (
	"context"
	"strings"

	"github.com/unitscope/unitscope/pkg/runner"
)

// fakeRunner serves canned results keyed by the full command line. Unknown
// commands fail with exit 1, mimicking a missing tool.
type fakeRunner struct {
	results map[string]runner.Result
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) runner.Result {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if res, ok := f.results[key]; ok {
		return res
	}
	return runner.Result{Output: "command not found", Code: 1}
}

func (f *fakeRunner) RunAsUser(ctx context.Context, _ int, name string, args ...string) runner.Result {
	return f.Run(ctx, name, args...)
}
