package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is a unit of detached work. Its error is logged and dropped.
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	run  Task
}

// Executor runs fire-and-forget tasks on a fixed set of workers.
//
// Submit never blocks: when the queue is full the task is dropped and logged.
// Task errors and panics are logged and swallowed; nothing is retried.
type Executor struct {
	tasks   chan namedTask
	group   *errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// NewExecutor starts workers goroutines draining a queue of queueSize tasks.
// Each task gets its own timeout derived from the executor's lifetime context.
func NewExecutor(workers, queueSize int, timeout time.Duration, logger *zap.Logger) *Executor {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		tasks:   make(chan namedTask, queueSize),
		group:   &errgroup.Group{},
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}

	for i := 0; i < workers; i++ {
		e.group.Go(func() error {
			for task := range e.tasks {
				e.run(task)
			}
			return nil
		})
	}

	return e
}

// Submit queues task without waiting. It reports whether the task was accepted.
func (e *Executor) Submit(name string, task Task) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.logger.Warn("Engagement task dropped: executor closed", zap.String("task", name))
		return false
	}

	select {
	case e.tasks <- namedTask{name: name, run: task}:
		return true
	default:
		e.logger.Warn("Engagement task dropped: queue full",
			zap.String("task", name),
			zap.Int("queue_size", cap(e.tasks)),
		)
		return false
	}
}

func (e *Executor) run(task namedTask) {
	ctx := e.ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(e.ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			e.logger.Error("Engagement task panicked",
				zap.String("task", task.name),
				zap.Any("panic", recovered),
			)
		}
	}()

	start := time.Now()
	if err := task.run(ctx); err != nil {
		e.logger.Warn("Engagement task failed",
			zap.String("task", task.name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	e.logger.Debug("Engagement task completed",
		zap.String("task", task.name),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// Close stops accepting tasks and waits for queued ones to finish. If ctx expires first,
// in-flight tasks are cancelled and Close returns once the workers have stopped.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.tasks)
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = e.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.cancel()
		return nil
	case <-ctx.Done():
		e.cancel()
		<-done
		return fmt.Errorf("engagement executor drain interrupted: %w", ctx.Err())
	}
}
