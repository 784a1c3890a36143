package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockBoardStore implements store.BoardStore for testing. The default
// implementation keeps boards in memory, in creation order.
type MockBoardStore struct {
	CreateFn func(ctx context.Context, board *domain.Board) error
	GetFn    func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Board, error)
	ListFn   func(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)
	DeleteFn func(ctx context.Context, ownerID, id uuid.UUID) error

	mu     sync.Mutex
	Boards []domain.Board
}

// NewMockBoardStore creates a mock seeded with boards.
func NewMockBoardStore(boards ...domain.Board) *MockBoardStore {
	return &MockBoardStore{Boards: append([]domain.Board(nil), boards...)}
}

// Ensure MockBoardStore implements store.BoardStore interface
var _ store.BoardStore = (*MockBoardStore)(nil)

// Create implements store.BoardStore.Create
func (m *MockBoardStore) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, board)
	}
	if err := board.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Boards = append(m.Boards, *board)
	return nil
}

// Get implements store.BoardStore.Get
func (m *MockBoardStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Board, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ownerID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Boards {
		if b.ID == id && b.OwnerID == ownerID {
			board := b
			return &board, nil
		}
	}
	return nil, store.ErrBoardNotFound
}

// List implements store.BoardStore.List
func (m *MockBoardStore) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Board{}
	for _, b := range m.Boards {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Delete implements store.BoardStore.Delete
func (m *MockBoardStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.Boards {
		if b.ID == id && b.OwnerID == ownerID {
			m.Boards = append(m.Boards[:i], m.Boards[i+1:]...)
			return nil
		}
	}
	return store.ErrBoardNotFound
}

// WithTx implements store.BoardStore.WithTx
func (m *MockBoardStore) WithTx(tx *sql.Tx) store.BoardStore {
	return m
}
