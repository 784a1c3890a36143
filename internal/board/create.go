package board

import (
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// PendingCreate is a request to create a task. The task store assigns the
// id; the created task joins the projection through MergeCreated.
type PendingCreate struct {
	BoardID  uuid.UUID        `json:"board_id"`
	Column   domain.ColumnKey `json:"column"`
	Position int              `json:"position"`
	Content  string           `json:"content"`
}

// Draft converts the request into the task store's creation payload.
func (c PendingCreate) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		BoardID:  c.BoardID,
		Column:   c.Column,
		Position: c.Position,
		Content:  c.Content,
	}
}

// AddTask prepares the creation of a task at the end of the todo column.
// Content is trimmed, rejected when empty and truncated otherwise. The
// projection itself is not changed.
func AddTask(p Projection, content string, boardID uuid.UUID) (PendingCreate, error) {
	if boardID == uuid.Nil || !p.HasBoard() {
		return PendingCreate{}, ErrNoBoard
	}
	if boardID != p.BoardID {
		return PendingCreate{}, ErrBoardMismatch
	}

	normalized, err := domain.NormalizeContent(content)
	if err != nil {
		return PendingCreate{}, err
	}

	return PendingCreate{
		BoardID:  boardID,
		Column:   domain.ColumnTodo,
		Position: p.Len(domain.ColumnTodo),
		Content:  normalized,
	}, nil
}

// MergeCreated appends a task returned by the task store to the end of its
// column. Its position is set to its new index so the column stays dense.
func MergeCreated(p Projection, task domain.Task) (Projection, error) {
	if !p.HasBoard() {
		return p, ErrNoBoard
	}
	if task.BoardID != p.BoardID {
		return p, ErrBoardMismatch
	}
	if !task.Column.Valid() {
		return p, ErrUnknownColumn
	}
	if _, exists := p.Tasks[task.ID]; exists {
		return p, ErrDuplicateTask
	}

	next := p.clone()
	seq := p.Columns[task.Column]
	task.Position = len(seq)
	task.Content = domain.TruncateContent(task.Content)
	next.Columns[task.Column] = insertAt(seq, len(seq), task.ID)
	next.Tasks[task.ID] = task
	return next, nil
}
