package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard/internal/api/middleware"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	url   string
	tasks *mocks.MockTaskStore
}

// newTestServer runs the API handlers over in-memory stores. Every bearer
// token is accepted as the same user.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtSvc := mocks.NewAuthenticatedJWTService(uuid.New())
	jwtSvc.Token = "test-token"
	tasks := mocks.NewMockTaskStore()

	authHandler := api.NewAuthHandler(mocks.NewMockUserStore(), jwtSvc, &mocks.MockPasswordVerifier{ShouldSucceed: true})
	boardHandler := api.NewBoardHandler(mocks.NewMockBoardStore(), nil, nil)
	taskHandler := api.NewTaskHandler(tasks)

	r := chi.NewRouter()
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.NewAuthMiddleware(jwtSvc).Authenticate)
		r.Get("/api/boards", boardHandler.List)
		r.Post("/api/boards", boardHandler.Create)
		r.Delete("/api/boards/{id}", boardHandler.Delete)
		r.Get("/api/tasks", taskHandler.List)
		r.Post("/api/tasks", taskHandler.Create)
		r.Put("/api/tasks/{id}", taskHandler.Update)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{url: srv.URL, tasks: tasks}
}

func (s *testServer) taskByContent(t *testing.T, content string) domain.Task {
	t.Helper()

	for _, task := range s.tasks.Tasks {
		if task.Content == content {
			return task
		}
	}
	t.Fatalf("no task with content %q", content)
	return domain.Task{}
}

func runCLI(t *testing.T, srv *testServer, sessionPath, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", srv.url, "--session", sessionPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_BoardWorkflow(t *testing.T) {
	srv := newTestServer(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")

	_, err := runCLI(t, srv, sessionPath, "", "boards", "list")
	require.ErrorIs(t, err, session.ErrNoSession)

	out, err := runCLI(t, srv, sessionPath, "password123\n", "register", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Signed in as alice.\n", out)

	s, err := session.Load(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, "test-token", s.Token)
	assert.Equal(t, "alice", s.Username)

	out, err = runCLI(t, srv, sessionPath, "", "boards", "create", "Home", "chores")
	require.NoError(t, err)
	assert.Contains(t, out, "Created board Home chores")

	out, err = runCLI(t, srv, sessionPath, "", "boards", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Home chores")

	_, err = runCLI(t, srv, sessionPath, "", "add", "home chores", "Water", "plants")
	require.NoError(t, err)
	out, err = runCLI(t, srv, sessionPath, "", "add", "home chores", "Take out trash")
	require.NoError(t, err)
	assert.Contains(t, out, "To Do (2)")

	out, err = runCLI(t, srv, sessionPath, "", "add", "home chores", "   ")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to add.\n", out)

	trash := srv.taskByContent(t, "Take out trash")
	assert.Equal(t, 1, trash.Position)

	out, err = runCLI(t, srv, sessionPath, "", "move", "home chores", shortID(trash.ID), "done", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "Done (1)")
	assert.Equal(t, domain.ColumnDone, srv.taskByContent(t, "Take out trash").Column)

	out, err = runCLI(t, srv, sessionPath, "", "move", "home chores", shortID(trash.ID), "done", "0")
	require.NoError(t, err)
	assert.Equal(t, "No changes.\n", out)

	water := srv.taskByContent(t, "Water plants")
	_, err = runCLI(t, srv, sessionPath, "", "edit", "home chores", shortID(water.ID), "Water", "the", "ferns")
	require.NoError(t, err)
	assert.Equal(t, "Water the ferns", srv.tasks.Tasks[water.ID].Content)

	out, err = runCLI(t, srv, sessionPath, "", "show", "home chores")
	require.NoError(t, err)
	assert.Contains(t, out, "Water the ferns")
	assert.Contains(t, out, "In Progress (0)")

	_, err = runCLI(t, srv, sessionPath, "", "move", "home chores", shortID(water.ID), "sideways", "0")
	assert.ErrorContains(t, err, "unknown column")

	_, err = runCLI(t, srv, sessionPath, "", "show", "nowhere")
	assert.ErrorContains(t, err, `no board matches "nowhere"`)

	out, err = runCLI(t, srv, sessionPath, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)
	_, statErr := os.Stat(sessionPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_LoginRequiresPassword(t *testing.T) {
	srv := newTestServer(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")

	_, err := runCLI(t, srv, sessionPath, "", "login", "alice")
	assert.ErrorContains(t, err, "password required")
}

func TestCLI_RegisterTakenUsername(t *testing.T) {
	srv := newTestServer(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")

	_, err := runCLI(t, srv, sessionPath, "", "register", "alice", "--password", "password123")
	require.NoError(t, err)

	_, err = runCLI(t, srv, sessionPath, "", "register", "alice", "--password", "password123")
	assert.ErrorContains(t, err, `username "alice" is already taken`)
}

func TestCLI_DeleteBoard(t *testing.T) {
	srv := newTestServer(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")

	_, err := runCLI(t, srv, sessionPath, "", "register", "bob", "--password", "password123")
	require.NoError(t, err)
	_, err = runCLI(t, srv, sessionPath, "", "boards", "create", "Scratch")
	require.NoError(t, err)

	out, err := runCLI(t, srv, sessionPath, "", "boards", "delete", "scratch")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted board")

	out, err = runCLI(t, srv, sessionPath, "", "boards", "list")
	require.NoError(t, err)
	assert.Equal(t, "No boards.\n", out)
}
