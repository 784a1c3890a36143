package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// fakeAPI serves a minimal in-memory version of the task board API.
type fakeAPI struct {
	boards []domain.Board
	tasks  map[uuid.UUID]domain.Task
	users  map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		tasks: make(map[uuid.UUID]domain.Task),
		users: map[string]string{"alice": "correct horse"},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "trace_id": "trace-1"})
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if f.users[creds.Username] != creds.Password {
			writeErr(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{
			UserID:    uuid.New(),
			Username:  creds.Username,
			Token:     testToken,
			ExpiresAt: time.Now().Add(time.Hour),
		})
	})

	r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if _, exists := f.users[creds.Username]; exists {
			writeErr(w, http.StatusConflict, "Username already registered")
			return
		}
		f.users[creds.Username] = creds.Password
		writeJSON(w, http.StatusCreated, AuthResponse{UserID: uuid.New(), Username: creds.Username, Token: testToken})
	})

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer "+testToken {
					writeErr(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				next.ServeHTTP(w, r)
			})
		})

		r.Get("/api/boards", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, f.boards)
		})
		r.Post("/api/boards", func(w http.ResponseWriter, r *http.Request) {
			var req createBoardRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			b := domain.Board{ID: uuid.New(), Title: req.Title}
			f.boards = append(f.boards, b)
			writeJSON(w, http.StatusCreated, b)
		})
		r.Delete("/api/boards/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			for i, b := range f.boards {
				if b.ID.String() == id {
					f.boards = append(f.boards[:i], f.boards[i+1:]...)
					writeJSON(w, http.StatusOK, map[string]string{"detail": "Board deleted"})
					return
				}
			}
			writeErr(w, http.StatusNotFound, "Board not found")
		})

		r.Get("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
			boardID, err := uuid.Parse(r.URL.Query().Get("board_id"))
			if err != nil {
				writeErr(w, http.StatusBadRequest, "Invalid board ID")
				return
			}
			out := []domain.Task{}
			for _, t := range f.tasks {
				if t.BoardID == boardID {
					out = append(out, t)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
			var draft domain.TaskDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			t := domain.Task{
				ID:       uuid.New(),
				BoardID:  draft.BoardID,
				Column:   draft.Column,
				Position: draft.Position,
				Content:  draft.Content,
			}
			f.tasks[t.ID] = t
			writeJSON(w, http.StatusCreated, t)
		})
		r.Put("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, _ := uuid.Parse(chi.URLParam(r, "id"))
			t, ok := f.tasks[id]
			if !ok {
				writeErr(w, http.StatusNotFound, "Task not found")
				return
			}
			var patch domain.TaskPatch
			_ = json.NewDecoder(r.Body).Decode(&patch)
			t.Column, t.Position, t.Content = patch.Column, patch.Position, patch.Content
			f.tasks[id] = t
			writeJSON(w, http.StatusOK, t)
		})
	})

	return r
}

func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI())

	resp, err := c.Authenticate(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, testToken, resp.Token)
	assert.Equal(t, testToken, c.Token())
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI())

	_, err := c.Authenticate(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrAuthOrNetwork)
	assert.Equal(t, "authorization or network error", err.Error())
	assert.Empty(t, c.Token())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI())

	_, err := c.Register(context.Background(), "alice", "whatever123")
	require.ErrorIs(t, err, ErrAuthOrNetwork)
	assert.True(t, IsConflict(err))

	resp, err := c.Register(context.Background(), "bob", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Username)
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := New(srv.URL, WithToken(testToken))
	require.NoError(t, err)

	_, err = c.ListBoards(context.Background())
	assert.ErrorIs(t, err, ErrAuthOrNetwork)

	_, err = c.Authenticate(context.Background(), "alice", "x")
	assert.ErrorIs(t, err, ErrAuthOrNetwork)
}

func TestAuthenticatedCallsRequireToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI())

	_, err := c.ListBoards(context.Background())
	assert.ErrorIs(t, err, ErrAuthOrNetwork)

	c.SetToken("stale")
	_, err = c.ListBoards(context.Background())
	assert.ErrorIs(t, err, ErrAuthOrNetwork)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "trace-1", apiErr.TraceID)
}

func TestBoards(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI(), WithToken(testToken))
	ctx := context.Background()

	created, err := c.CreateBoard(ctx, "Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", created.Title)

	boards, err := c.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, created.ID, boards[0].ID)

	require.NoError(t, c.DeleteBoard(ctx, created.ID))

	err = c.DeleteBoard(ctx, created.ID)
	assert.True(t, IsNotFound(err))
	assert.NotErrorIs(t, err, ErrAuthOrNetwork)
}

func TestTasks(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newFakeAPI(), WithToken(testToken))
	ctx := context.Background()
	boardID := uuid.New()

	created, err := c.CreateTask(ctx, domain.TaskDraft{
		BoardID: boardID,
		Column:  domain.ColumnTodo,
		Content: "write tests",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	updated, err := c.UpdateTask(ctx, created.ID, domain.TaskPatch{
		BoardID:  boardID,
		Column:   domain.ColumnDone,
		Position: 3,
		Content:  "write tests",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnDone, updated.Column)
	assert.Equal(t, 3, updated.Position)

	tasks, err := c.ListTasks(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.ColumnDone, tasks[0].Column)

	_, err = c.UpdateTask(ctx, uuid.New(), domain.TaskPatch{BoardID: boardID, Column: domain.ColumnTodo, Content: "x"})
	assert.True(t, IsNotFound(err))
}
