package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUpdater struct {
	mu      sync.Mutex
	calls   map[uuid.UUID][]domain.TaskPatch
	failFor map[uuid.UUID]error
}

func newRecordingUpdater() *recordingUpdater {
	return &recordingUpdater{
		calls:   make(map[uuid.UUID][]domain.TaskPatch),
		failFor: make(map[uuid.UUID]error),
	}
}

func (r *recordingUpdater) UpdateTask(_ context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls[id] = append(r.calls[id], patch)
	if err, ok := r.failFor[id]; ok {
		return nil, err
	}
	return &domain.Task{
		ID:       id,
		BoardID:  patch.BoardID,
		Column:   patch.Column,
		Position: patch.Position,
		Content:  patch.Content,
	}, nil
}

func (r *recordingUpdater) callCount(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls[id])
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func updates(boardID uuid.UUID, n int) []board.PendingUpdate {
	out := make([]board.PendingUpdate, n)
	for i := range out {
		out[i] = board.PendingUpdate{
			TaskID:   uuid.New(),
			BoardID:  boardID,
			Column:   domain.ColumnTodo,
			Position: i,
			Content:  "task",
		}
	}
	return out
}

type resultCollector struct {
	mu      sync.Mutex
	results []Result
}

func (c *resultCollector) add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *resultCollector) all() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func TestDispatcher_DeliversEveryUpdate(t *testing.T) {
	t.Parallel()

	updater := newRecordingUpdater()
	d := New(updater, DefaultConfig(), testLogger())
	collector := &resultCollector{}
	d.SetResultHandler(collector.add)
	d.Start()

	boardID := uuid.New()
	batch := updates(boardID, 5)
	queued := d.Dispatch(batch)
	d.Stop()

	assert.Equal(t, 5, queued)
	for _, u := range batch {
		require.Equal(t, 1, updater.callCount(u.TaskID))
		patch := updater.calls[u.TaskID][0]
		assert.Equal(t, boardID, patch.BoardID)
		assert.Equal(t, u.Position, patch.Position)
		assert.Equal(t, u.Column, patch.Column)
		assert.Equal(t, u.Content, patch.Content)
	}

	assert.Equal(t, Stats{Dispatched: 5, Succeeded: 5}, d.Stats())
	results := collector.all()
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, r.OK())
		require.NotNil(t, r.Task)
		assert.Equal(t, r.Job.Update.TaskID, r.Task.ID)
	}
}

func TestDispatcher_FailuresAreNotRetried(t *testing.T) {
	t.Parallel()

	updater := newRecordingUpdater()
	batch := updates(uuid.New(), 3)
	storeErr := errors.New("store unavailable")
	updater.failFor[batch[1].TaskID] = storeErr

	d := New(updater, Config{WorkerCount: 2, QueueSize: 10}, testLogger())
	collector := &resultCollector{}
	d.SetResultHandler(collector.add)
	d.Start()
	d.Dispatch(batch)
	d.Stop()

	for _, u := range batch {
		assert.Equal(t, 1, updater.callCount(u.TaskID))
	}
	assert.Equal(t, Stats{Dispatched: 3, Succeeded: 2, Failed: 1}, d.Stats())

	var failed []Result
	for _, r := range collector.all() {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, storeErr)
	assert.Equal(t, batch[1].TaskID, failed[0].Job.Update.TaskID)
}

func TestDispatcher_BatchLargerThanQueueSize(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	slow := UpdaterFunc(func(_ context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
		calls.Add(1)
		time.Sleep(time.Millisecond)
		return &domain.Task{ID: id, Position: patch.Position}, nil
	})

	d := New(slow, Config{WorkerCount: 2, QueueSize: 8}, testLogger())
	d.Start()

	// One move in a long column renumbers far more tasks than QueueSize.
	batch := updates(uuid.New(), 300)
	queued := d.Dispatch(batch)
	d.Stop()

	assert.Equal(t, 300, queued)
	assert.Equal(t, int64(300), calls.Load())
	assert.Equal(t, Stats{Dispatched: 300, Succeeded: 300}, d.Stats())
}

func TestDispatcher_QueuesBeforeStart(t *testing.T) {
	t.Parallel()

	updater := newRecordingUpdater()
	d := New(updater, Config{WorkerCount: 1, QueueSize: 1}, testLogger())

	// Not started yet, so every job waits in the queue.
	batch := updates(uuid.New(), 3)
	assert.Equal(t, 3, d.Dispatch(batch))
	assert.Zero(t, updater.callCount(batch[0].TaskID))

	d.Stop()
	for _, u := range batch {
		assert.Equal(t, 1, updater.callCount(u.TaskID))
	}
	assert.Equal(t, Stats{Dispatched: 3, Succeeded: 3}, d.Stats())
}

func TestDispatcher_RepeatedBatchesAreAllDelivered(t *testing.T) {
	t.Parallel()

	updater := newRecordingUpdater()
	d := New(updater, DefaultConfig(), testLogger())
	d.Start()

	var all []board.PendingUpdate
	for i := 0; i < 5; i++ {
		batch := updates(uuid.New(), 100)
		all = append(all, batch...)
		assert.Equal(t, 100, d.Dispatch(batch))
	}
	d.Stop()

	for _, u := range all {
		require.Equal(t, 1, updater.callCount(u.TaskID))
	}
	assert.Equal(t, Stats{Dispatched: 500, Succeeded: 500}, d.Stats())
}

func TestDispatcher_DispatchAfterStop(t *testing.T) {
	t.Parallel()

	updater := newRecordingUpdater()
	d := New(updater, DefaultConfig(), testLogger())
	collector := &resultCollector{}
	d.SetResultHandler(collector.add)
	d.Start()
	d.Stop()

	queued := d.Dispatch(updates(uuid.New(), 1))
	assert.Zero(t, queued)

	results := collector.all()
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrQueueClosed)

	// Stop is idempotent.
	d.Stop()
}

func TestDispatcher_CallTimeout(t *testing.T) {
	t.Parallel()

	blocking := UpdaterFunc(func(ctx context.Context, _ uuid.UUID, _ domain.TaskPatch) (*domain.Task, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	d := New(blocking, Config{WorkerCount: 1, QueueSize: 1, CallTimeout: 20 * time.Millisecond}, testLogger())
	collector := &resultCollector{}
	d.SetResultHandler(collector.add)
	d.Start()
	d.Dispatch(updates(uuid.New(), 1))
	d.Stop()

	results := collector.all()
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), d.Stats().Failed)
}

func TestDispatcher_StopWaitsForInFlightCalls(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var finished sync.WaitGroup
	finished.Add(1)

	slow := UpdaterFunc(func(ctx context.Context, id uuid.UUID, _ domain.TaskPatch) (*domain.Task, error) {
		defer finished.Done()
		started <- struct{}{}
		<-release
		return &domain.Task{ID: id}, ctx.Err()
	})

	d := New(slow, Config{WorkerCount: 1, QueueSize: 1}, testLogger())
	d.Start()
	d.Dispatch(updates(uuid.New(), 1))
	<-started

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a call was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	finished.Wait()
	<-stopped
	assert.Equal(t, Stats{Dispatched: 1, Succeeded: 1}, d.Stats())
}

func TestNew_InvalidWorkerCount(t *testing.T) {
	t.Parallel()

	d := New(newRecordingUpdater(), Config{WorkerCount: 0, QueueSize: 4}, nil)
	assert.Equal(t, 1, d.config.WorkerCount)

	d.Dispatch(updates(uuid.New(), 2))
	d.Stop()
	assert.Equal(t, int64(2), d.Stats().Succeeded)
}
