package generator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a function invoked on a fixed interval.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Scheduler runs each task on its own ticker until the context ends. A slow
// run delays that task's next tick only.
type Scheduler struct {
	tasks  []Task
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger, tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks, logger: logger}
}

// Run blocks until ctx is cancelled and every task goroutine has returned.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range s.tasks {
		if t.Interval <= 0 {
			s.logger.Warn("skipping task with non-positive interval", zap.String("task", t.Name))
			continue
		}
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			s.loop(ctx, t)
		}(t)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	s.logger.Info("task scheduled", zap.String("task", t.Name), zap.Duration("interval", t.Interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("task stopped", zap.String("task", t.Name))
			return
		case <-ticker.C:
			t.Run(ctx)
		}
	}
}
