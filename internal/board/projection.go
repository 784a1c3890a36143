package board

import (
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// Projection is the working set of a single board. Treat it as immutable:
// engine operations return a fresh Projection instead of editing this one.
type Projection struct {
	// BoardID is the board all tasks belong to; uuid.Nil means no active board.
	BoardID uuid.UUID

	// Columns maps every fixed column to its ordered task ids.
	Columns map[domain.ColumnKey][]uuid.UUID

	// Tasks maps task ids to their records.
	Tasks map[uuid.UUID]domain.Task
}

// PendingUpdate is a declarative instruction to persist one task's column,
// position and content.
type PendingUpdate struct {
	TaskID   uuid.UUID        `json:"task_id"`
	BoardID  uuid.UUID        `json:"board_id"`
	Column   domain.ColumnKey `json:"column"`
	Position int              `json:"position"`
	Content  string           `json:"content"`
}

// Patch converts the update into the task store's replacement payload.
func (u PendingUpdate) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		BoardID:  u.BoardID,
		Column:   u.Column,
		Position: u.Position,
		Content:  u.Content,
	}
}

// Empty returns a projection with three empty columns for boardID.
// Passing uuid.Nil yields the no-board state.
func Empty(boardID uuid.UUID) Projection {
	p := Projection{
		BoardID: boardID,
		Columns: make(map[domain.ColumnKey][]uuid.UUID, 3),
		Tasks:   make(map[uuid.UUID]domain.Task),
	}
	for _, col := range domain.Columns() {
		p.Columns[col] = []uuid.UUID{}
	}
	return p
}

// Load builds the projection of boardID from the tasks returned by the task
// store. Tasks with an unknown column, tasks of another board and repeated
// ids are dropped. Each column is sorted by position with a stable sort, so
// ties and gaps keep input order; positions are then renumbered densely and
// content is truncated for display.
func Load(boardID uuid.UUID, tasks []domain.Task) Projection {
	p := Empty(boardID)
	if boardID == uuid.Nil {
		return p
	}

	grouped := make(map[domain.ColumnKey][]domain.Task, 3)
	for _, t := range tasks {
		if !t.Column.Valid() || t.BoardID != boardID {
			continue
		}
		if _, seen := p.Tasks[t.ID]; seen {
			continue
		}
		t.Content = domain.TruncateContent(t.Content)
		p.Tasks[t.ID] = t
		grouped[t.Column] = append(grouped[t.Column], t)
	}

	for col, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Position < list[j].Position
		})
		ids := make([]uuid.UUID, 0, len(list))
		for i, t := range list {
			t.Position = i
			p.Tasks[t.ID] = t
			ids = append(ids, t.ID)
		}
		p.Columns[col] = ids
	}

	return p
}

// HasBoard reports whether the projection belongs to an actual board.
func (p Projection) HasBoard() bool {
	return p.BoardID != uuid.Nil
}

// Len returns the length of a column's sequence, orphaned ids included.
func (p Projection) Len(col domain.ColumnKey) int {
	return len(p.Columns[col])
}

// Size returns the number of task ids across all columns.
func (p Projection) Size() int {
	n := 0
	for _, col := range domain.Columns() {
		n += len(p.Columns[col])
	}
	return n
}

// ColumnTasks returns the tasks of col in display order. Ids without a task
// record are skipped here but stay in the column sequence.
func (p Projection) ColumnTasks(col domain.ColumnKey) []domain.Task {
	seq := p.Columns[col]
	out := make([]domain.Task, 0, len(seq))
	for _, id := range seq {
		if t, ok := p.Tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Locate returns the column and sequence index holding taskID.
func (p Projection) Locate(taskID uuid.UUID) (domain.ColumnKey, int, bool) {
	for _, col := range domain.Columns() {
		for i, id := range p.Columns[col] {
			if id == taskID {
				return col, i, true
			}
		}
	}
	return "", 0, false
}

// clone copies both maps. Column slices are shared until replaced, so callers
// must never write into them in place.
func (p Projection) clone() Projection {
	next := Projection{
		BoardID: p.BoardID,
		Columns: make(map[domain.ColumnKey][]uuid.UUID, len(p.Columns)),
		Tasks:   make(map[uuid.UUID]domain.Task, len(p.Tasks)),
	}
	for col, seq := range p.Columns {
		next.Columns[col] = seq
	}
	for id, t := range p.Tasks {
		next.Tasks[id] = t
	}
	return next
}

// renumber assigns column and dense positions to every task of col and
// appends one update per task to updates.
func (p Projection) renumber(col domain.ColumnKey, updates []PendingUpdate) []PendingUpdate {
	for i, id := range p.Columns[col] {
		t, ok := p.Tasks[id]
		if !ok {
			continue
		}
		t.Column = col
		t.Position = i
		p.Tasks[id] = t
		updates = append(updates, PendingUpdate{
			TaskID:   id,
			BoardID:  p.BoardID,
			Column:   col,
			Position: i,
			Content:  t.Content,
		})
	}
	return updates
}
