package collector

import (
	"context"

	"github.com/unitscope/unitscope/pkg/runner"
)

// Runner abstracts command execution so collectors can be fed canned
// outputs in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) runner.Result
	RunAsUser(ctx context.Context, uid int, name string, args ...string) runner.Result
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateDirectoryCollector() *DirectoryCollector
	CreateManagerCollector() *ManagerCollector
	CreateUnitCollector(kind UnitKind) *UnitCollector
	CreateTimerCollector() *TimerCollector
	CreateSessionCollector() *SessionCollector
	CreateCgroupCollector() *CgroupCollector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Runner Runner
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner overrides the command runner shared by all collectors.
func WithRunner(r Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Runner: runner.New(runner.DefaultTimeout),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateDirectoryCollector creates a unit-directory collector.
func (f *DefaultFactory) CreateDirectoryCollector() *DirectoryCollector {
	return &DirectoryCollector{}
}

// CreateManagerCollector creates a manager-status collector.
func (f *DefaultFactory) CreateManagerCollector() *ManagerCollector {
	return &ManagerCollector{Runner: f.Runner}
}

// CreateUnitCollector creates a unit collector scoped to one kind.
func (f *DefaultFactory) CreateUnitCollector(kind UnitKind) *UnitCollector {
	return &UnitCollector{Kind: kind, Runner: f.Runner}
}

// CreateTimerCollector creates a timer-schedule collector.
func (f *DefaultFactory) CreateTimerCollector() *TimerCollector {
	return &TimerCollector{Runner: f.Runner}
}

// CreateSessionCollector creates a login-session collector.
func (f *DefaultFactory) CreateSessionCollector() *SessionCollector {
	return &SessionCollector{Runner: f.Runner}
}

// CreateCgroupCollector creates a cgroup-tree collector.
func (f *DefaultFactory) CreateCgroupCollector() *CgroupCollector {
	return &CgroupCollector{Runner: f.Runner}
}
