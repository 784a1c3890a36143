package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// ListTasks returns every task of a board.
func (c *Client) ListTasks(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error) {
	query := url.Values{"board_id": []string{boardID.String()}}

	var out []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", query, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, draft, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask replaces the column, position, content and board of a task.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id.String(), nil, patch, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
