package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"
)

const (
	snapshotJobName = "sales_snapshot"

	defaultSnapshotAttempts = 3
	defaultInitialBackoff   = 250 * time.Millisecond
	defaultMaximumBackoff   = 2 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

// RetryPolicy controls how many times a snapshot insert is retried.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaximumBackoff time.Duration
	WriteTimeout   time.Duration
}

type snapshotStore interface {
	CreateSnapshot(ctx context.Context, snapshot *models.SalesSnapshot) error
}

// SnapshotWriter persists historical sales snapshots off the request path.
// Writes are fire-and-forget: failures are retried with doubling backoff,
// then logged, never surfaced to the caller.
type SnapshotWriter struct {
	store snapshotStore
	logg  *logger.Logger
	jobs  *metrics.JobMetrics
	retry RetryPolicy

	wg sync.WaitGroup
}

// NewSnapshotWriter builds a snapshot writer with the given retry policy.
// Zero policy fields get defaults.
func NewSnapshotWriter(store snapshotStore, logg *logger.Logger, jobs *metrics.JobMetrics, retry RetryPolicy) (*SnapshotWriter, error) {
	if store == nil {
		return nil, errors.New("snapshot store required")
	}
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = defaultSnapshotAttempts
	}
	if retry.InitialBackoff <= 0 {
		retry.InitialBackoff = defaultInitialBackoff
	}
	if retry.MaximumBackoff <= 0 {
		retry.MaximumBackoff = defaultMaximumBackoff
	}
	if retry.MaximumBackoff < retry.InitialBackoff {
		retry.MaximumBackoff = retry.InitialBackoff
	}
	if retry.WriteTimeout <= 0 {
		retry.WriteTimeout = defaultWriteTimeout
	}
	return &SnapshotWriter{store: store, logg: logg, jobs: jobs, retry: retry}, nil
}

// WriteAsync schedules the snapshot insert on a background goroutine with its
// own deadline, detached from the request context.
func (w *SnapshotWriter) WriteAsync(snapshot *models.SalesSnapshot) {
	if w == nil || snapshot == nil {
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), w.retry.WriteTimeout)
		defer cancel()

		started := time.Now()
		err := w.insertWithRetry(ctx, snapshot)
		w.jobs.ObserveDuration(snapshotJobName, time.Since(started))
		if err != nil {
			w.jobs.IncFailure(snapshotJobName)
			if w.logg != nil {
				w.logg.Error(ctx, "sales snapshot write failed", err)
			}
			return
		}
		w.jobs.IncSuccess(snapshotJobName)
	}()
}

// Wait blocks until all scheduled writes have finished. Used on shutdown and
// in tests.
func (w *SnapshotWriter) Wait() {
	if w == nil {
		return
	}
	w.wg.Wait()
}

func (w *SnapshotWriter) insertWithRetry(ctx context.Context, snapshot *models.SalesSnapshot) error {
	attempts := 0
	backoff := w.retry.InitialBackoff

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := w.store.CreateSnapshot(ctx, snapshot)
		if err == nil {
			return nil
		}

		attempts++
		if attempts >= w.retry.MaxAttempts {
			return err
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		timer.Stop()

		backoff = minDuration(backoff*2, w.retry.MaximumBackoff)
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
