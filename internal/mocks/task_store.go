package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
//
// Without function overrides it behaves like a single-owner store: tasks
// live in memory and every call is counted. Owner scoping is not modelled;
// set the Fn fields for that.
type MockTaskStore struct {
	ListByBoardFn func(ctx context.Context, ownerID, boardID uuid.UUID) ([]domain.Task, error)
	CreateFn      func(ctx context.Context, ownerID uuid.UUID, draft domain.TaskDraft) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	mu    sync.Mutex
	Tasks map[uuid.UUID]domain.Task
	Calls struct {
		ListByBoard int
		Create      int
		Update      int
	}
}

// NewMockTaskStore creates a mock seeded with tasks.
func NewMockTaskStore(tasks ...domain.Task) *MockTaskStore {
	m := &MockTaskStore{Tasks: make(map[uuid.UUID]domain.Task, len(tasks))}
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
	return m
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// ListByBoard implements store.TaskStore.ListByBoard
func (m *MockTaskStore) ListByBoard(ctx context.Context, ownerID, boardID uuid.UUID) ([]domain.Task, error) {
	m.mu.Lock()
	m.Calls.ListByBoard++
	m.mu.Unlock()

	if m.ListByBoardFn != nil {
		return m.ListByBoardFn(ctx, ownerID, boardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Task{}
	for _, t := range m.Tasks {
		if t.BoardID == boardID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, ownerID uuid.UUID, draft domain.TaskDraft) (*domain.Task, error) {
	m.mu.Lock()
	m.Calls.Create++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, draft)
	}

	content, err := domain.NormalizeContent(draft.Content)
	if err != nil {
		return nil, err
	}
	task := domain.Task{
		ID:       uuid.New(),
		BoardID:  draft.BoardID,
		Column:   draft.Column,
		Position: draft.Position,
		Content:  content,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks[task.ID] = task
	return &task, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	m.mu.Lock()
	m.Calls.Update++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[id]
	if !ok || task.BoardID != patch.BoardID {
		return nil, store.ErrTaskNotFound
	}
	task.Column = patch.Column
	task.Position = patch.Position
	task.Content = domain.TruncateContent(patch.Content)
	m.Tasks[id] = task
	return &task, nil
}

// CallCounts returns the number of ListByBoard, Create and Update calls.
func (m *MockTaskStore) CallCounts() (list, create, update int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls.ListByBoard, m.Calls.Create, m.Calls.Update
}
