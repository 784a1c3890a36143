package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// BoardStore defines the interface for board persistence. Every method is
// scoped to an owner; boards of other users behave as if they did not exist.
type BoardStore interface {
	// Create saves a new board.
	Create(ctx context.Context, board *domain.Board) error

	// Get returns a board owned by ownerID.
	// Returns ErrBoardNotFound if it does not exist or is owned by someone else.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Board, error)

	// List returns the boards of ownerID in creation order.
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)

	// Delete removes a board and, through the foreign key, all of its tasks.
	// Returns ErrBoardNotFound if it does not exist or is owned by someone else.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// WithTx returns a new BoardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BoardStore
}
