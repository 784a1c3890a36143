package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/domain"
)

// Updater is the task store operation the dispatcher calls, once per job.
type Updater interface {
	UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

// UpdateTask calls f.
func (f UpdaterFunc) UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	return f(ctx, id, patch)
}

// Job is a single queued update call.
type Job struct {
	ID       uuid.UUID
	Update   board.PendingUpdate
	Enqueued time.Time
}

func newJob(u board.PendingUpdate) Job {
	return Job{
		ID:       uuid.New(),
		Update:   u,
		Enqueued: time.Now(),
	}
}

// Result describes the outcome of one job.
type Result struct {
	Job      Job
	Task     *domain.Task
	Err      error
	Duration time.Duration
}

// OK reports whether the update reached the task store.
func (r Result) OK() bool {
	return r.Err == nil
}

// Stats holds counters accumulated since the dispatcher was created.
type Stats struct {
	Dispatched int64
	Succeeded  int64
	Failed     int64
}
