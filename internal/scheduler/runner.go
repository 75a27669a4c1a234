package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ScanFunc runs one deadline scan cycle.
type ScanFunc func(ctx context.Context) error

// Runner invokes a scan immediately and then once per Interval until its
// context is cancelled. A failed cycle is logged and the next tick retries.
type Runner struct {
	Interval time.Duration
	Scan     ScanFunc
	Logger   *slog.Logger
	// Timeout bounds a single cycle. Zero means no per-cycle timeout.
	Timeout time.Duration
}

func NewRunner(interval time.Duration, scan ScanFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Interval: interval, Scan: scan, Logger: logger}
}

// Run blocks until ctx is done. It returns nil on cancellation and an error
// only for an invalid configuration.
func (r *Runner) Run(ctx context.Context) error {
	if r.Interval <= 0 {
		return errors.New("scan interval must be positive")
	}
	if r.Scan == nil {
		return errors.New("scan function is required")
	}

	r.cycle(ctx)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("scan runner stopped")
			return nil
		case <-ticker.C:
			r.cycle(ctx)
		}
	}
}

func (r *Runner) cycle(ctx context.Context) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	start := time.Now()
	if err := r.Scan(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		r.Logger.Warn("scan cycle failed", "error", err)
		return
	}
	r.Logger.Debug("scan cycle finished", "duration_ms", time.Since(start).Milliseconds())
}
