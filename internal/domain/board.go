package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxBoardTitleLength bounds board titles.
const MaxBoardTitleLength = 100

// Board validation errors
var (
	ErrEmptyBoardID      = errors.New("board ID cannot be empty")
	ErrEmptyBoardOwnerID = errors.New("board owner ID cannot be empty")
	ErrEmptyBoardTitle   = errors.New("board title cannot be empty")
	ErrBoardTitleTooLong = errors.New("board title must be at most 100 characters long")
)

// Board is a named collection of tasks owned by a single user.
type Board struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBoard creates a Board with a trimmed title and a fresh ID.
func NewBoard(ownerID uuid.UUID, title string) (*Board, error) {
	board := &Board{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now().UTC(),
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBoardID
	}
	if b.OwnerID == uuid.Nil {
		return ErrEmptyBoardOwnerID
	}
	if b.Title == "" {
		return ErrEmptyBoardTitle
	}
	if len([]rune(b.Title)) > MaxBoardTitleLength {
		return ErrBoardTitleTooLong
	}
	return nil
}
