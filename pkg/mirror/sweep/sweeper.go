package sweep

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"autogit-hq/autogit/pkg/mirror"
)

// Sweeper refreshes every materialized mirror under the repository root.
// It is the batch counterpart to the gateway's lazy per-session refresh:
// the gateway materializes on demand, the sweeper keeps mirrors warm in
// between.
type Sweeper struct {
	store       *mirror.Store
	lifecycle   *mirror.Lifecycle
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
	metrics     *Metrics
}

// Result summarizes one sweep.
type Result struct {
	// Found is the number of mirrors discovered under the root.
	Found int

	// Refreshed is the number of mirrors updated successfully.
	Refreshed int

	// Failed is the number of mirrors whose remote update failed.
	Failed int

	// Skipped is the number of mirrors locked by a live session.
	Skipped int

	// Duration is the wall-clock time of the sweep.
	Duration time.Duration
}

// NewSweeper creates a Sweeper. concurrency bounds parallel refreshes;
// timeout bounds a single refresh (zero disables). metrics may be nil.
func NewSweeper(store *mirror.Store, lifecycle *mirror.Lifecycle, concurrency int, timeout time.Duration, logger *slog.Logger, metrics *Metrics) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Sweeper{
		store:       store,
		lifecycle:   lifecycle,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger.With("component", "sweep"),
		metrics:     metrics,
	}
}

// Run performs one sweep: discover mirrors, refresh each under its
// non-blocking per-mirror lock, and report totals. A mirror busy in a
// live SSH session is skipped, not queued; the next sweep picks it up.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	infos, err := s.store.List()
	if err != nil {
		return Result{}, err
	}

	var (
		mu  sync.Mutex
		res = Result{Found: len(infos)}
	)

	work := make(chan mirror.Info)
	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for info := range work {
				outcome := s.refreshOne(ctx, info)
				mu.Lock()
				switch outcome {
				case refreshed:
					res.Refreshed++
				case failed:
					res.Failed++
				case skipped:
					res.Skipped++
				}
				mu.Unlock()
			}
		}()
	}

	for _, info := range infos {
		select {
		case <-ctx.Done():
			// Stop feeding; in-flight refreshes drain below.
		case work <- info:
			continue
		}
		break
	}
	close(work)
	wg.Wait()

	res.Duration = time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveSweep(res)
	}

	s.logger.Info("sweep finished",
		"found", res.Found,
		"refreshed", res.Refreshed,
		"failed", res.Failed,
		"skipped", res.Skipped,
		"duration", res.Duration,
	)

	return res, ctx.Err()
}

type outcome int

const (
	refreshed outcome = iota
	failed
	skipped
)

func (s *Sweeper) refreshOne(ctx context.Context, info mirror.Info) outcome {
	ref := info.Reference()

	lock, ok, err := s.store.TryLock(ref)
	if err != nil {
		s.logger.Error("cannot lock mirror", "repository", ref.FullName, "error", err)
		return failed
	}
	if !ok {
		s.logger.Debug("mirror busy, skipping", "repository", ref.FullName)
		return skipped
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release mirror lock", "repository", ref.FullName, "error", err)
		}
	}()

	refreshCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		refreshCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.lifecycle.Refresh(refreshCtx, ref); err != nil {
		s.logger.Error("refresh failed", "repository", ref.FullName, "error", err)
		return failed
	}

	s.logger.Debug("mirror refreshed", "repository", ref.FullName)
	return refreshed
}
