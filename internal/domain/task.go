package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ColumnKey identifies one of the fixed board columns.
type ColumnKey string

// The fixed board columns, in display order.
const (
	ColumnTodo       ColumnKey = "todo"
	ColumnInProgress ColumnKey = "in_progress"
	ColumnDone       ColumnKey = "done"
)

// Content length limits.
const (
	// MaxContentLength is the number of characters kept when content is truncated.
	MaxContentLength = 50

	// Ellipsis is appended to content that was truncated.
	Ellipsis = "..."
)

// Task validation errors
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTaskBoardID = errors.New("task board ID cannot be empty")
)

var columnOrder = []ColumnKey{ColumnTodo, ColumnInProgress, ColumnDone}

var columnTitles = map[ColumnKey]string{
	ColumnTodo:       "To Do",
	ColumnInProgress: "In Progress",
	ColumnDone:       "Done",
}

// Columns returns the fixed columns in display order.
func Columns() []ColumnKey {
	out := make([]ColumnKey, len(columnOrder))
	copy(out, columnOrder)
	return out
}

// Valid reports whether c is one of the fixed columns.
func (c ColumnKey) Valid() bool {
	_, ok := columnTitles[c]
	return ok
}

// Title returns the display title of the column, or the raw key if unknown.
func (c ColumnKey) Title() string {
	if t, ok := columnTitles[c]; ok {
		return t
	}
	return string(c)
}

// ParseColumn converts s to a ColumnKey. It accepts the key itself or the
// display title, case-insensitively.
func ParseColumn(s string) (ColumnKey, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range columnOrder {
		if norm == string(c) || norm == strings.ToLower(columnTitles[c]) {
			return c, nil
		}
	}
	// Accept "in-progress" and "inprogress" as used on the command line.
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm) {
	case "inprogress":
		return ColumnInProgress, nil
	}
	return "", ErrInvalidColumn
}

// Task is a single card on a board. Position is the task's 0-based rank
// within its column.
type Task struct {
	ID       uuid.UUID `json:"id"`
	BoardID  uuid.UUID `json:"board_id"`
	Column   ColumnKey `json:"column"`
	Position int       `json:"position"`
	Content  string    `json:"content"`
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.BoardID == uuid.Nil {
		return ErrEmptyTaskBoardID
	}
	if !t.Column.Valid() {
		return ErrInvalidColumn
	}
	if t.Position < 0 {
		return ErrInvalidPosition
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// TaskDraft is a request to create a task; the store assigns the ID.
type TaskDraft struct {
	BoardID  uuid.UUID `json:"board_id"`
	Column   ColumnKey `json:"column"`
	Position int       `json:"position"`
	Content  string    `json:"content"`
}

// TaskPatch replaces the mutable fields of an existing task.
type TaskPatch struct {
	BoardID  uuid.UUID `json:"board_id"`
	Column   ColumnKey `json:"column"`
	Position int       `json:"position"`
	Content  string    `json:"content"`
}

// TruncateContent limits s to MaxContentLength characters, appending
// Ellipsis when anything was cut. Shorter content is returned unchanged.
func TruncateContent(s string) string {
	r := []rune(s)
	if len(r) <= MaxContentLength {
		return s
	}
	return string(r[:MaxContentLength]) + Ellipsis
}

// NormalizeContent trims surrounding whitespace and truncates the result.
// It returns ErrEmptyContent when nothing is left.
func NormalizeContent(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	return TruncateContent(trimmed), nil
}
