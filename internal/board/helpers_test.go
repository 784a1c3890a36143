package board

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/require"
)

// fixture builds a loaded projection whose tasks are named by their content.
type fixture struct {
	boardID uuid.UUID
	ids     map[string]uuid.UUID
	p       Projection
}

func newFixture(t *testing.T, layout map[domain.ColumnKey][]string) *fixture {
	t.Helper()

	f := &fixture{boardID: uuid.New(), ids: make(map[string]uuid.UUID)}
	var tasks []domain.Task
	for col, names := range layout {
		for i, name := range names {
			id := uuid.New()
			f.ids[name] = id
			tasks = append(tasks, domain.Task{
				ID:       id,
				BoardID:  f.boardID,
				Column:   col,
				Position: i,
				Content:  name,
			})
		}
	}
	f.p = Load(f.boardID, tasks)
	return f
}

func (f *fixture) id(name string) uuid.UUID {
	return f.ids[name]
}

// names returns the contents of col in sequence order.
func names(p Projection, col domain.ColumnKey) []string {
	out := []string{}
	for _, t := range p.ColumnTasks(col) {
		out = append(out, t.Content)
	}
	return out
}

// requireDense asserts the position invariant for every column.
func requireDense(t *testing.T, p Projection) {
	t.Helper()
	for _, col := range domain.Columns() {
		for i, id := range p.Columns[col] {
			task, ok := p.Tasks[id]
			require.True(t, ok, "id %s in column %s has no task record", id, col)
			require.Equal(t, i, task.Position, "task %q in column %s", task.Content, col)
			require.Equal(t, col, task.Column, "task %q column field", task.Content)
		}
	}
}

// snapshot deep-copies p so tests can detect in-place mutation.
func snapshot(p Projection) Projection {
	c := Projection{
		BoardID: p.BoardID,
		Columns: make(map[domain.ColumnKey][]uuid.UUID),
		Tasks:   make(map[uuid.UUID]domain.Task),
	}
	for col, seq := range p.Columns {
		c.Columns[col] = append([]uuid.UUID{}, seq...)
	}
	for id, task := range p.Tasks {
		c.Tasks[id] = task
	}
	return c
}
