package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore defines the interface for task persistence. Every method is
// scoped to the owner of the task's board.
type TaskStore interface {
	// ListByBoard returns the tasks of a board ordered by column and position.
	// Returns ErrBoardNotFound if the board is not owned by ownerID.
	ListByBoard(ctx context.Context, ownerID, boardID uuid.UUID) ([]domain.Task, error)

	// Create inserts a task built from draft and returns it with its new id.
	// Returns ErrBoardNotFound if the draft's board is not owned by ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, draft domain.TaskDraft) (*domain.Task, error)

	// Update replaces column, position and content of a task. The task must
	// already be on patch.BoardID.
	// Returns ErrTaskNotFound otherwise, or when the board is not owned by ownerID.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
}
