package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`

	// Token is the bearer token used for API authorization
	Token string `json:"token"`

	ExpiresAt time.Time `json:"expires_at"`
}

// CreateBoardRequest defines the payload for creating a board.
type CreateBoardRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// BoardResponse is the public representation of a board.
type BoardResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func boardToResponse(b domain.Board) BoardResponse {
	return BoardResponse{ID: b.ID, Title: b.Title, CreatedAt: b.CreatedAt}
}

// CreateTaskRequest defines the payload for creating a task. Column
// defaults to todo and Position to 0.
type CreateTaskRequest struct {
	BoardID  uuid.UUID         `json:"board_id" validate:"required"`
	Content  string            `json:"content"  validate:"required"`
	Column   *domain.ColumnKey `json:"column,omitempty"`
	Position *int              `json:"position,omitempty"`
}

// UpdateTaskRequest replaces the mutable fields of a task. BoardID must be
// the board the task is already on.
type UpdateTaskRequest struct {
	BoardID  uuid.UUID        `json:"board_id" validate:"required"`
	Content  string           `json:"content"  validate:"required"`
	Column   domain.ColumnKey `json:"column"   validate:"required"`
	Position *int             `json:"position" validate:"required"`
}

// DetailResponse carries a human readable confirmation.
type DetailResponse struct {
	Detail string `json:"detail"`
}
