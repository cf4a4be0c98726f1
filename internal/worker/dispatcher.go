package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Task is a unit of background work detached from the request/response cycle.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs fire-and-forget side effects (order notifications, cache
// revalidation) on a bounded queue with a fixed worker pool. A full queue
// drops the task with a log line; nothing ever blocks the enqueueing request.
type Dispatcher struct {
	workers int
	logger  *slog.Logger

	tasks  chan Task
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
}

// NewDispatcher constructs the background dispatcher.
func NewDispatcher(queueSize, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		workers: workers,
		logger:  logger,
		tasks:   make(chan Task, queueSize),
	}
}

// Start launches background workers. The startup context may carry a
// deadline, so workers run on a detached context cancelled only by Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop prevents new work and waits for in-flight tasks to finish. Tasks still
// queued when the context ends are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue schedules a task. Returns false when the queue is full or the
// dispatcher already stopped.
func (d *Dispatcher) Enqueue(task Task) bool {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		d.logger.Warn("dispatcher stopped, dropping task", slog.String("task", task.Name))
		return false
	}

	select {
	case d.tasks <- task:
		return true
	default:
		d.logger.Warn("task queue full, dropping task", slog.String("task", task.Name))
		return false
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-d.tasks:
			if !ok {
				return
			}
			d.handle(ctx, task)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("background task panicked",
				slog.String("task", task.Name),
				slog.Any("panic", r))
		}
	}()

	if err := task.Run(ctx); err != nil {
		d.logger.Error("background task failed",
			slog.String("task", task.Name),
			slog.String("error", err.Error()))
	}
}
