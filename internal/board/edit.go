package board

import (
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// EditContent replaces the content of taskID. The new content is trimmed
// and truncated; unchanged content yields no update.
func EditContent(p Projection, taskID uuid.UUID, content string) (Projection, []PendingUpdate, error) {
	task, ok := p.Tasks[taskID]
	if !ok {
		return p, nil, ErrTaskNotFound
	}

	normalized, err := domain.NormalizeContent(content)
	if err != nil {
		return p, nil, err
	}
	if normalized == task.Content {
		return p, nil, nil
	}

	next := p.clone()
	task.Content = normalized
	next.Tasks[taskID] = task

	return next, []PendingUpdate{{
		TaskID:   taskID,
		BoardID:  p.BoardID,
		Column:   task.Column,
		Position: task.Position,
		Content:  normalized,
	}}, nil
}
