package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/stretchr/testify/require"
)

// newRouter mounts the handlers the way the server does, without the
// token middleware; asUser stands in for it.
func newRouter(auth *AuthHandler, boards *BoardHandler, tasks *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if auth != nil {
			r.Post("/auth/register", auth.Register)
			r.Post("/auth/login", auth.Login)
		}
		if boards != nil {
			r.Get("/boards", boards.List)
			r.Post("/boards", boards.Create)
			r.Delete("/boards/{id}", boards.Delete)
		}
		if tasks != nil {
			r.Get("/tasks", tasks.List)
			r.Post("/tasks", tasks.Create)
			r.Put("/tasks/{id}", tasks.Update)
		}
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
