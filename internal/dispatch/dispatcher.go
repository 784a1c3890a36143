package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/taskboard/internal/board"
)

// Config holds dispatcher settings.
type Config struct {
	// WorkerCount is the number of concurrent update calls. Values below 1 mean 1.
	WorkerCount int

	// QueueSize is the backlog of waiting updates above which a warning is
	// logged. The backlog itself is unbounded: no update is ever dropped.
	QueueSize int

	// CallTimeout limits each update call. Zero disables the limit.
	CallTimeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 4,
		QueueSize:   256,
		CallTimeout: 10 * time.Second,
	}
}

// Dispatcher fans pending updates out to a worker pool.
type Dispatcher struct {
	updater Updater
	config  Config
	queue   *jobQueue
	logger  *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup

	onResult func(Result)

	dispatched atomic.Int64
	succeeded  atomic.Int64
	failed     atomic.Int64
}

// New creates a dispatcher. Call Start to begin processing.
func New(updater Updater, config Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "dispatch")

	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}

	return &Dispatcher{
		updater: updater,
		config:  config,
		queue:   newJobQueue(config.QueueSize, logger),
		logger:  logger,
	}
}

// SetResultHandler registers a function called after every job, including
// jobs rejected by a closed queue. It runs on worker goroutines and
// must be safe for concurrent use. Set it before Start.
func (d *Dispatcher) SetResultHandler(handler func(Result)) {
	d.onResult = handler
}

// Start launches the workers. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.config.WorkerCount; i++ {
			d.wg.Add(1)
			go d.worker(i)
		}
		d.logger.Debug("dispatcher started",
			"worker_count", d.config.WorkerCount,
			"queue_size", d.config.QueueSize)
	})
}

// Dispatch queues one job per update and returns without waiting for any
// call. Every update is queued while the dispatcher is running, however
// many there are. It returns the number of updates queued; after Stop it
// queues nothing and reports each update as failed with ErrQueueClosed.
func (d *Dispatcher) Dispatch(updates []board.PendingUpdate) int {
	queued := 0
	for _, u := range updates {
		d.dispatched.Add(1)
		job := newJob(u)
		if err := d.queue.enqueue(job); err != nil {
			d.fail(Result{Job: job, Err: err}, d.logger.With(
				"job_id", job.ID,
				"task_id", u.TaskID,
				"board_id", u.BoardID,
			))
			continue
		}
		queued++
	}
	return queued
}

// Stop closes the queue and waits until every queued and in-flight call has
// finished. Calls are not cancelled.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.queue.close()
		// Workers that never started would leave buffered jobs behind.
		d.Start()
		d.wg.Wait()

		s := d.Stats()
		d.logger.Debug("dispatcher stopped",
			"dispatched", s.Dispatched,
			"succeeded", s.Succeeded,
			"failed", s.Failed)
	})
}

// Stats returns a snapshot of the job counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Succeeded:  d.succeeded.Load(),
		Failed:     d.failed.Load(),
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		job, ok := d.queue.next()
		if !ok {
			return
		}
		d.process(job, id)
	}
}

func (d *Dispatcher) process(job Job, workerID int) {
	u := job.Update
	logger := d.logger.With(
		"job_id", job.ID,
		"task_id", u.TaskID,
		"board_id", u.BoardID,
		"worker_id", workerID,
	)

	ctx := context.Background()
	if d.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	task, err := d.updater.UpdateTask(ctx, u.TaskID, u.Patch())
	result := Result{Job: job, Task: task, Err: err, Duration: time.Since(start)}

	if err != nil {
		d.fail(result, logger)
		return
	}

	d.succeeded.Add(1)
	logger.Debug("task update persisted",
		"column", u.Column,
		"position", u.Position,
		"duration_ms", result.Duration.Milliseconds())
	d.report(result)
}

func (d *Dispatcher) fail(result Result, logger *slog.Logger) {
	d.failed.Add(1)
	u := result.Job.Update
	logger.Error("task update failed",
		"column", u.Column,
		"position", u.Position,
		"error", result.Err)
	d.report(result)
}

func (d *Dispatcher) report(result Result) {
	if d.onResult != nil {
		d.onResult(result)
	}
}
