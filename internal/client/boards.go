package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

type createBoardRequest struct {
	Title string `json:"title"`
}

// ListBoards returns the caller's boards in creation order.
func (c *Client) ListBoards(ctx context.Context) ([]domain.Board, error) {
	var out []domain.Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBoard creates a board owned by the caller.
func (c *Client) CreateBoard(ctx context.Context, title string) (*domain.Board, error) {
	var out domain.Board
	if err := c.do(ctx, http.MethodPost, "/api/boards", nil, createBoardRequest{Title: title}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBoard deletes a board and all of its tasks.
func (c *Client) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/boards/"+id.String(), nil, nil, nil, true)
}
