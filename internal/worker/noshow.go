// Package worker runs background jobs next to the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// NoShowSweeper marks overdue confirmed bookings as no-shows.
type NoShowSweeper interface {
	SweepNoShows(ctx context.Context) (int, error)
}

// NoShowWorker runs the sweeper on a fixed interval until its context ends.
type NoShowWorker struct {
	Sweeper  NoShowSweeper
	Interval time.Duration
	Log      *slog.Logger
}

func NewNoShowWorker(sweeper NoShowSweeper, interval time.Duration, log *slog.Logger) *NoShowWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &NoShowWorker{Sweeper: sweeper, Interval: interval, Log: log}
}

// Run sweeps once immediately, then on every tick. It returns when ctx is done.
func (w *NoShowWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.Log.Info("no_show_worker_started", "interval", w.Interval.String())
	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("no_show_worker_stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Errors are logged; the next tick retries.
func (w *NoShowWorker) Sweep(ctx context.Context) {
	n, err := w.Sweeper.SweepNoShows(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.Log.Error("no_show_sweep_failed", "error", err.Error())
		}
		return
	}
	if n > 0 {
		w.Log.Info("no_show_sweep", "marked", n)
	}
}
