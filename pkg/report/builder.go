package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unitscope/unitscope/pkg/collector"
	"github.com/unitscope/unitscope/pkg/errors"
	"github.com/unitscope/unitscope/pkg/header"
	"github.com/unitscope/unitscope/pkg/identity"
)

// Builder captures a Report by fanning collection out over the probe
// collectors. Identity resolution runs strictly first, since every probe
// is scoped to the resolved user; the independent probes then run in
// parallel; the summary is derived only after all probes complete.
type Builder struct {
	// Version is the tool version stamped into the report header.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Resolve resolves the invoking user. If nil, identity.Resolve is used.
	Resolve func() (*identity.Identity, error)
}

// Capture collects all report sections. Individual probe failures degrade
// their own section; only identity resolution failure or context
// cancellation aborts the capture.
func (b *Builder) Capture(ctx context.Context) (*Report, error) {
	if b.Factory == nil {
		b.Factory = collector.NewDefaultFactory()
	}
	if b.Resolve == nil {
		b.Resolve = identity.Resolve
	}

	slog.Debug("starting user report capture")

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		reportCaptureDuration.Observe(elapsed.Seconds())
		slog.Debug("capture timing", slog.Duration("elapsed", elapsed))
	}()

	id, err := b.Resolve()
	if err != nil {
		reportCaptureTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(errors.ErrCodeIdentity, "failed to resolve current user", err)
	}
	slog.Debug("resolved identity", slog.String("user", id.Name), slog.Int("uid", id.UID))

	rep := NewReport()
	rep.UserInfo = id
	rep.Init(header.KindUserReport, APIVersion, b.Version)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer observeProbe("directories", time.Now())
		dc := b.Factory.CreateDirectoryCollector()
		probes := dc.Collect(gctx, id)
		mu.Lock()
		rep.Directories = probes
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("services", time.Now())
		uc := b.Factory.CreateUnitCollector(collector.KindService)
		units := uc.Collect(gctx, id)
		mu.Lock()
		rep.Services = units
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("sockets", time.Now())
		uc := b.Factory.CreateUnitCollector(collector.KindSocket)
		units := uc.Collect(gctx, id)
		mu.Lock()
		rep.Sockets = units
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("timers", time.Now())
		tc := b.Factory.CreateTimerCollector()
		timers := tc.Collect(gctx, id)
		mu.Lock()
		rep.Timers = timers
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("manager", time.Now())
		mc := b.Factory.CreateManagerCollector()
		status := mc.Collect(gctx, id)
		mu.Lock()
		rep.ManagerStatus = status
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("sessions", time.Now())
		sc := b.Factory.CreateSessionCollector()
		linger := sc.LingerStatus(gctx, id)
		sessions := sc.ListSystemUsers(gctx)
		mu.Lock()
		id.Linger = linger
		rep.Sessions = sessions
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observeProbe("cgroup", time.Now())
		cc := b.Factory.CreateCgroupCollector()
		stats := cc.Collect(gctx, id)
		mu.Lock()
		rep.Cgroup = stats
		mu.Unlock()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		reportCaptureTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("report capture aborted: %w", err)
	}

	rep.Summary = BuildSummary(rep)

	reportCaptureTotal.WithLabelValues("success").Inc()
	reportUnitCount.Set(float64(len(rep.Services) + len(rep.Sockets) + len(rep.Timers)))

	slog.Debug("report capture complete",
		slog.Int("services", len(rep.Services)),
		slog.Int("sockets", len(rep.Sockets)),
		slog.Int("timers", len(rep.Timers)))

	return rep, nil
}

func observeProbe(name string, start time.Time) {
	reportProbeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
