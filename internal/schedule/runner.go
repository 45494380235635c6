package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner runs a task right away and then on every tick until ctx is done.
// Errors and panics of a single run are logged, they never stop the loop.
type Runner struct {
	task     Task
	interval time.Duration
}

func NewRunner(task Task, interval time.Duration) *Runner {
	return &Runner{
		task:     task,
		interval: interval,
	}
}

func (r *Runner) Run(ctx context.Context) {
	slog.Info("task scheduled", "task", r.task.Name(), "interval", r.interval)
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("task stopped", "task", r.task.Name())
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	start := time.Now()
	err := r.safeRun(ctx)
	if err != nil {
		slog.Error("task run failed", "task", r.task.Name(), "cost", time.Since(start), "error", err)
		return
	}
	slog.Info("task run finished", "task", r.task.Name(), "cost", time.Since(start))
}

func (r *Runner) safeRun(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panic: %v", p)
		}
	}()
	return r.task.Run(ctx)
}
