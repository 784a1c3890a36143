package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/domain"
)

type boardLister interface {
	ListBoards(ctx context.Context) ([]domain.Board, error)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// resolveBoard finds the board named by ref: a full id, a unique id
// prefix or an exact title, ignoring case.
func resolveBoard(ctx context.Context, boards boardLister, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	all, err := boards.ListBoards(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	var byTitle, byPrefix []uuid.UUID
	prefix := strings.ToLower(ref)
	for _, b := range all {
		if strings.EqualFold(b.Title, ref) {
			byTitle = append(byTitle, b.ID)
		}
		if prefix != "" && strings.HasPrefix(b.ID.String(), prefix) {
			byPrefix = append(byPrefix, b.ID)
		}
	}

	switch {
	case len(byTitle) == 1:
		return byTitle[0], nil
	case len(byTitle) > 1:
		return uuid.Nil, fmt.Errorf("board title %q is ambiguous, use its id", ref)
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return uuid.Nil, fmt.Errorf("board id prefix %q is ambiguous", ref)
	default:
		return uuid.Nil, fmt.Errorf("no board matches %q", ref)
	}
}

// resolveTask finds the task of p whose id starts with ref.
func resolveTask(p board.Projection, ref string) (uuid.UUID, error) {
	prefix := strings.ToLower(ref)
	if prefix == "" {
		return uuid.Nil, fmt.Errorf("task id required")
	}

	var matches []uuid.UUID
	for _, col := range domain.Columns() {
		for _, t := range p.ColumnTasks(col) {
			if strings.HasPrefix(t.ID.String(), prefix) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return uuid.Nil, fmt.Errorf("no task on this board matches %q", ref)
	default:
		return uuid.Nil, fmt.Errorf("task id prefix %q is ambiguous", ref)
	}
}
