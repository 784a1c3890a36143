package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/board"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticBoards struct {
	boards []domain.Board
	err    error
	calls  int
}

func (s *staticBoards) ListBoards(context.Context) ([]domain.Board, error) {
	s.calls++
	return s.boards, s.err
}

func TestResolveBoard(t *testing.T) {
	work := domain.Board{ID: uuid.MustParse("aaaa1111-0000-4000-8000-000000000001"), Title: "Work"}
	home := domain.Board{ID: uuid.MustParse("aaaa2222-0000-4000-8000-000000000002"), Title: "Home"}
	twin := domain.Board{ID: uuid.MustParse("bbbb3333-0000-4000-8000-000000000003"), Title: "home"}

	t.Run("full id skips the listing", func(t *testing.T) {
		lister := &staticBoards{}
		id, err := resolveBoard(context.Background(), lister, work.ID.String())
		require.NoError(t, err)
		assert.Equal(t, work.ID, id)
		assert.Zero(t, lister.calls)
	})

	tests := []struct {
		name    string
		boards  []domain.Board
		ref     string
		want    uuid.UUID
		wantErr string
	}{
		{"title ignoring case", []domain.Board{work, home}, "WORK", work.ID, ""},
		{"unique prefix", []domain.Board{work, home}, "aaaa2", home.ID, ""},
		{"ambiguous prefix", []domain.Board{work, home}, "aaaa", uuid.Nil, "ambiguous"},
		{"ambiguous title", []domain.Board{home, twin}, "Home", uuid.Nil, "ambiguous"},
		{"no match", []domain.Board{work}, "garden", uuid.Nil, `no board matches "garden"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := resolveBoard(context.Background(), &staticBoards{boards: tc.boards}, tc.ref)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}

	t.Run("listing failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := resolveBoard(context.Background(), &staticBoards{err: boom}, "Work")
		assert.ErrorIs(t, err, boom)
	})
}

func TestResolveTask(t *testing.T) {
	boardID := uuid.New()
	a := domain.Task{ID: uuid.MustParse("cccc1111-0000-4000-8000-000000000001"), BoardID: boardID, Column: domain.ColumnTodo, Content: "A"}
	b := domain.Task{ID: uuid.MustParse("cccc2222-0000-4000-8000-000000000002"), BoardID: boardID, Column: domain.ColumnDone, Content: "B"}
	p := board.Load(boardID, []domain.Task{a, b})

	id, err := resolveTask(p, "CCCC2")
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	_, err = resolveTask(p, "cccc")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveTask(p, "dddd")
	assert.ErrorContains(t, err, "no task")

	_, err = resolveTask(p, "")
	assert.Error(t, err)
}
