package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// ListByBoard implements store.TaskStore.ListByBoard
func (s *PostgresTaskStore) ListByBoard(
	ctx context.Context,
	ownerID, boardID uuid.UUID,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("board_id", boardID.String()))

	var owned bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM boards WHERE id = $1 AND owner_id = $2)`,
		boardID, ownerID,
	).Scan(&owned)
	if err != nil {
		log.Error("failed to check board ownership", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	if !owned {
		log.Debug("board not found while listing tasks")
		return nil, store.ErrBoardNotFound
	}

	query := `
		SELECT id, board_id, column_key, position, content
		FROM tasks
		WHERE board_id = $1
		ORDER BY column_key, position, created_at
	`
	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// Content is trimmed and truncated before it is stored.
func (s *PostgresTaskStore) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	content, err := domain.NormalizeContent(draft.Content)
	if err != nil {
		return nil, err
	}
	task := &domain.Task{
		ID:       uuid.New(),
		BoardID:  draft.BoardID,
		Column:   draft.Column,
		Position: draft.Position,
		Content:  content,
	}
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	// The insert only happens when the board belongs to the owner.
	query := `
		INSERT INTO tasks (id, board_id, column_key, position, content)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM boards WHERE id = $2 AND owner_id = $6)
	`
	result, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.BoardID,
		string(task.Column),
		task.Position,
		task.Content,
		ownerID,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("board_id", task.BoardID.String()))
		return nil, MapError(err)
	}
	if err := CheckRowsAffected(result, "board"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("board not found while creating task",
				slog.String("board_id", task.BoardID.String()))
			return nil, store.ErrBoardNotFound
		}
		return nil, err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("board_id", task.BoardID.String()),
		slog.String("column", string(task.Column)),
		slog.Int("position", task.Position))
	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id.String()))

	content, err := domain.NormalizeContent(patch.Content)
	if err != nil {
		return nil, err
	}
	candidate := domain.Task{
		ID:       id,
		BoardID:  patch.BoardID,
		Column:   patch.Column,
		Position: patch.Position,
		Content:  content,
	}
	if err := candidate.Validate(); err != nil {
		log.Warn("task validation failed during update", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		UPDATE tasks AS t
		SET column_key = $1, position = $2, content = $3, updated_at = NOW()
		FROM boards AS b
		WHERE t.id = $4 AND t.board_id = $5 AND b.id = t.board_id AND b.owner_id = $6
		RETURNING t.id, t.board_id, t.column_key, t.position, t.content
	`
	row := s.db.QueryRowContext(ctx, query,
		string(candidate.Column),
		candidate.Position,
		candidate.Content,
		id,
		candidate.BoardID,
		ownerID,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update")
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("task updated",
		slog.String("column", string(task.Column)),
		slog.Int("position", task.Position))
	return task, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		column string
	)
	if err := row.Scan(&task.ID, &task.BoardID, &column, &task.Position, &task.Content); err != nil {
		return nil, err
	}
	task.Column = domain.ColumnKey(column)
	return &task, nil
}
