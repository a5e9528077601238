package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const defaultInterval = 5 * time.Minute

type RunnerParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.JobMetrics
	Interval time.Duration
}

// Runner executes every registered job once per interval.
type Runner struct {
	logg     *logger.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.JobMetrics
	interval time.Duration
}

func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	lock := params.Lock
	if lock == nil {
		lock = &LocalLock{}
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{
		logg:     params.Logger,
		registry: registry,
		lock:     lock,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run blocks until ctx is canceled, running a cycle immediately and then on
// every tick. It always returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	if r.registry.Len() == 0 {
		r.logg.Info(ctx, "no housekeeping jobs registered")
		<-ctx.Done()
		return ctx.Err()
	}
	if err := r.RunOnce(ctx); err != nil {
		r.logg.Error(ctx, "housekeeping cycle failed", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logg.Error(ctx, "housekeeping cycle failed", err)
			}
		}
	}
}

// RunOnce runs every job under the lock. A failing job does not stop the others.
func (r *Runner) RunOnce(ctx context.Context) error {
	locked, err := r.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		r.logg.Debug(ctx, "housekeeping lock held elsewhere; skipping cycle")
		return nil
	}
	defer func() {
		if relErr := r.lock.Release(context.WithoutCancel(ctx)); relErr != nil {
			r.logg.Error(ctx, "failed to release housekeeping lock", relErr)
		}
	}()

	for _, job := range r.registry.Jobs() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.runJob(ctx, job)
	}
	return nil
}

func (r *Runner) runJob(ctx context.Context, job Job) {
	jobCtx := r.logg.WithField(r.logg.WithJob(ctx, job.Name()), "event", "jobs.run")
	start := time.Now()
	removed, err := job.Run(jobCtx)
	duration := time.Since(start)
	r.metrics.ObserveDuration(job.Name(), duration)

	jobCtx = r.logg.WithFields(jobCtx, map[string]any{
		"duration_ms": duration.Milliseconds(),
		"removed":     removed,
	})
	if err != nil {
		r.logg.Error(jobCtx, "job failed", err)
		r.metrics.IncFailure(job.Name())
		return
	}
	r.metrics.AddRemoved(job.Name(), removed)
	r.metrics.IncSuccess(job.Name())
	if removed > 0 {
		r.logg.Info(jobCtx, "job completed")
	} else {
		r.logg.Debug(jobCtx, "job completed")
	}
}
