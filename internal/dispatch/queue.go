package dispatch

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueClosed is returned when a job is submitted after Stop.
var ErrQueueClosed = errors.New("dispatch queue is closed")

// jobQueue is an unbounded FIFO of jobs. Enqueue never blocks and never
// rejects a job while the queue is open; workers block in next until a job
// arrives or the queue is closed and drained.
type jobQueue struct {
	mu      sync.Mutex
	ready   *sync.Cond
	pending []Job
	closed  bool

	// warnAt is the backlog length above which enqueue logs a warning.
	warnAt int
	warned bool
	logger *slog.Logger
}

func newJobQueue(warnAt int, logger *slog.Logger) *jobQueue {
	q := &jobQueue{
		warnAt: warnAt,
		logger: logger,
	}
	q.ready = sync.NewCond(&q.mu)
	return q
}

func (q *jobQueue) enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.pending = append(q.pending, job)
	backlog := len(q.pending)
	q.ready.Signal()

	q.logger.Debug("update enqueued",
		"job_id", job.ID,
		"task_id", job.Update.TaskID,
		"queue_len", backlog)
	if q.warnAt > 0 && backlog > q.warnAt && !q.warned {
		q.warned = true
		q.logger.Warn("dispatch backlog is growing",
			"queue_len", backlog,
			"warn_at", q.warnAt)
	}
	return nil
}

// next returns the oldest pending job. It returns false once the queue is
// closed and empty.
func (q *jobQueue) next() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) == 0 && !q.closed {
		q.ready.Wait()
	}
	if len(q.pending) == 0 {
		return Job{}, false
	}

	job := q.pending[0]
	q.pending[0] = Job{}
	q.pending = q.pending[1:]
	if len(q.pending) <= q.warnAt {
		q.warned = false
	}
	return job, true
}

// close stops further submission. Jobs already pending stay readable.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		q.ready.Broadcast()
		q.logger.Debug("dispatch queue closed", "pending", len(q.pending))
	}
}
