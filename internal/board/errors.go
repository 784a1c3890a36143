package board

import (
	"errors"

	"github.com/phrazzld/taskboard/internal/domain"
)

// Errors returned by engine operations. All of them leave the input
// projection untouched.
var (
	// ErrUnknownColumn is returned when a column key is not one of the fixed columns.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrTaskNotAtSource is returned when the source slot of a move is out of
	// range or does not hold the moved task.
	ErrTaskNotAtSource = errors.New("task is not at the source position")

	// ErrTaskNotFound is returned when a task id has no record in the projection.
	ErrTaskNotFound = errors.New("task not found in projection")

	// ErrNoBoard is returned for operations that need an active board.
	ErrNoBoard = errors.New("no active board")

	// ErrBoardMismatch is returned when a task or request belongs to another board.
	ErrBoardMismatch = errors.New("task belongs to another board")

	// ErrDuplicateTask is returned when merging a task that is already present.
	ErrDuplicateTask = errors.New("task already present in projection")

	// ErrEmptyContent is returned when content is empty after trimming.
	ErrEmptyContent = domain.ErrEmptyContent
)

// IsValidationError reports whether err is a caller mistake that the board
// shell suppresses rather than surfaces.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrTaskNotAtSource) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrNoBoard) ||
		errors.Is(err, ErrEmptyContent)
}
