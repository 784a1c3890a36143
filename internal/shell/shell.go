// Package shell hosts the board engine for one view: it owns the active
// board and its projection, commits engine results and hands the resulting
// updates to the dispatcher.
//
// A Shell is not safe for concurrent use.
package shell

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore is the subset of the task store the shell calls directly.
type TaskStore interface {
	ListTasks(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
}

// Dispatcher queues pending updates for asynchronous delivery.
type Dispatcher interface {
	Dispatch(updates []board.PendingUpdate) int
}

// Shell is the board view state.
type Shell struct {
	tasks      TaskStore
	dispatcher Dispatcher
	logger     *slog.Logger

	boardID    uuid.UUID
	projection board.Projection
}

// New creates a shell with no active board.
func New(tasks TaskStore, dispatcher Dispatcher, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		tasks:      tasks,
		dispatcher: dispatcher,
		logger:     logger.With("component", "board_shell"),
		projection: board.Empty(uuid.Nil),
	}
}

// BoardID returns the active board, uuid.Nil when none is selected.
func (s *Shell) BoardID() uuid.UUID {
	return s.boardID
}

// Projection returns the committed projection.
func (s *Shell) Projection() board.Projection {
	return s.projection
}

// Column returns the tasks of col in display order.
func (s *Shell) Column(col domain.ColumnKey) []domain.Task {
	return s.projection.ColumnTasks(col)
}

// Open makes boardID the active board and loads its tasks. uuid.Nil clears
// the view. When loading fails the previous board and projection are kept.
func (s *Shell) Open(ctx context.Context, boardID uuid.UUID) error {
	if boardID == uuid.Nil {
		s.boardID = uuid.Nil
		s.projection = board.Empty(uuid.Nil)
		return nil
	}

	tasks, err := s.tasks.ListTasks(ctx, boardID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load board",
			"board_id", boardID,
			"error", err)
		return fmt.Errorf("failed to load board %s: %w", boardID, err)
	}

	s.boardID = boardID
	s.projection = board.Load(boardID, tasks)
	s.logger.DebugContext(ctx, "board loaded",
		"board_id", boardID,
		"task_count", s.projection.Size())
	return nil
}

// Move applies a move to the projection and dispatches the resulting
// updates. Invalid moves are ignored. It reports whether anything changed.
func (s *Shell) Move(src domain.ColumnKey, srcIdx int, dst domain.ColumnKey, dstIdx int, taskID uuid.UUID) bool {
	next, updates, err := board.Move(s.projection, src, srcIdx, dst, dstIdx, taskID)
	if err != nil {
		s.logger.Debug("move ignored",
			"task_id", taskID,
			"source", src,
			"source_index", srcIdx,
			"destination", dst,
			"destination_index", dstIdx,
			"reason", err)
		return false
	}
	// Only a move onto its own slot leaves the projection untouched.
	changed := src != dst || srcIdx != dstIdx
	return s.commit(next, updates, changed)
}

// MoveTo moves taskID from wherever it currently is to dstIdx in dst.
func (s *Shell) MoveTo(taskID uuid.UUID, dst domain.ColumnKey, dstIdx int) bool {
	src, srcIdx, ok := s.projection.Locate(taskID)
	if !ok {
		s.logger.Debug("move ignored", "task_id", taskID, "reason", board.ErrTaskNotFound)
		return false
	}
	return s.Move(src, srcIdx, dst, dstIdx, taskID)
}

// Add creates a task at the end of the todo column. Empty content and a
// missing board are ignored and return a nil task. Store failures are logged
// and returned with the projection unchanged.
func (s *Shell) Add(ctx context.Context, content string) (*domain.Task, error) {
	create, err := board.AddTask(s.projection, content, s.boardID)
	if err != nil {
		s.logger.DebugContext(ctx, "add ignored", "reason", err)
		return nil, nil
	}

	created, err := s.tasks.CreateTask(ctx, create.Draft())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			"board_id", create.BoardID,
			"error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	next, err := board.MergeCreated(s.projection, *created)
	if err != nil {
		// The store accepted the task but the view cannot show it; a reload
		// will pick it up.
		s.logger.WarnContext(ctx, "created task not merged",
			"task_id", created.ID,
			"board_id", created.BoardID,
			"error", err)
		return created, nil
	}

	s.projection = next
	return created, nil
}

// Edit replaces the content of taskID and dispatches the update. Empty
// content and unknown tasks are ignored.
func (s *Shell) Edit(taskID uuid.UUID, content string) bool {
	next, updates, err := board.EditContent(s.projection, taskID, content)
	if err != nil {
		s.logger.Debug("edit ignored", "task_id", taskID, "reason", err)
		return false
	}
	return s.commit(next, updates, len(updates) > 0)
}

// commit installs next before any update is dispatched. A changed projection
// is installed even when it yields no updates, as when only orphan ids moved.
func (s *Shell) commit(next board.Projection, updates []board.PendingUpdate, changed bool) bool {
	if !changed {
		return false
	}
	s.projection = next
	if len(updates) == 0 {
		s.logger.Debug("projection changed without updates", "board_id", s.boardID)
		return true
	}
	queued := s.dispatcher.Dispatch(updates)
	s.logger.Debug("updates dispatched",
		"board_id", s.boardID,
		"update_count", len(updates),
		"queued", queued)
	return true
}
