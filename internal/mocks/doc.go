// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one interface of the application with function
// fields for every method. When a function field is nil the mock falls back
// to a simple in-memory default, so most tests only override the calls they
// care about:
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.UpdateFn = func(ctx context.Context, owner, id uuid.UUID, p domain.TaskPatch) (*domain.Task, error) {
//	    return nil, store.ErrTaskNotFound
//	}
//
// TestifyMockUserStore is the testify/mock flavour for tests that assert on
// exact call arguments.
package mocks
