package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultSideEffectConcurrency int64 = 8
	DefaultSideEffectTimeout           = 10 * time.Second
)

// SideEffectDispatcher runs collaborator calls (receipts, notifications) after a
// unit of work has committed. Tasks run on a context detached from the caller,
// bounded in number and time. A failing task is logged and counted, never returned.
type SideEffectDispatcher struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// NewSideEffectDispatcher creates a dispatcher running at most concurrency tasks at once.
func NewSideEffectDispatcher(concurrency int64, timeout time.Duration, m *metrics.Metrics) *SideEffectDispatcher {
	if concurrency <= 0 {
		concurrency = DefaultSideEffectConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultSideEffectTimeout
	}
	return &SideEffectDispatcher{
		sem:     semaphore.NewWeighted(concurrency),
		timeout: timeout,
		metrics: m,
	}
}

// Dispatch schedules fn. It returns immediately.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, task string, fn func(ctx context.Context) error, attrs ...any) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("side_effect", task))
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	detached := middleware.WithLogger(context.WithoutCancel(ctx), logger)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sem.Acquire(detached, 1); err != nil {
			d.fail(detached, logger, task, err)
			return
		}
		defer d.sem.Release(1)

		taskCtx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()
		if err := run(taskCtx, fn); err != nil {
			d.fail(taskCtx, logger, task, err)
			return
		}
		logger.DebugContext(taskCtx, "Side effect completed")
	}()
}

// Wait blocks until every dispatched task has finished.
func (d *SideEffectDispatcher) Wait() {
	d.wg.Wait()
}

func (d *SideEffectDispatcher) fail(ctx context.Context, logger *slog.Logger, task string, err error) {
	logger.ErrorContext(ctx, "Side effect failed", slog.String("error", err.Error()))
	d.metrics.ObserveSideEffectFailure(task)
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("side effect panicked: %v", r)
		}
	}()
	return fn(ctx)
}
