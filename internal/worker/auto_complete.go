package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Completer marks overdue appointments as completed and reports how many.
type Completer interface {
	Execute(ctx context.Context) (int, error)
}

// AutoComplete runs a Completer on a fixed interval until its context ends.
type AutoComplete struct {
	job      Completer
	interval time.Duration
	log      *zap.Logger
}

func NewAutoComplete(job Completer, interval time.Duration, log *zap.Logger) *AutoComplete {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AutoComplete{job: job, interval: interval, log: log}
}

// Run blocks. One pass happens right away, then one per tick.
func (w *AutoComplete) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker.auto_complete.stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *AutoComplete) tick(ctx context.Context) {
	n, err := w.job.Execute(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("worker.auto_complete.failed", zap.Error(err))
		}
		return
	}
	if n > 0 {
		w.log.Info("worker.auto_complete.done", zap.Int("completed", n))
	}
}
