package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// TaskHandler handles the task store endpoints.
type TaskHandler struct {
	tasks store.TaskStore
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /api/tasks?board_id=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(r.URL.Query().Get("board_id"))
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: board_id", domain.ErrInvalidID), "Invalid board_id")
		return
	}

	tasks, err := h.tasks.ListByBoard(r.Context(), userID, boardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft := domain.TaskDraft{
		BoardID: req.BoardID,
		Column:  domain.ColumnTodo,
		Content: req.Content,
	}
	if req.Column != nil {
		draft.Column = *req.Column
	}
	if req.Position != nil {
		draft.Position = *req.Position
	}
	if err := checkPlacement(draft.Column, draft.Position); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, draft)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}. A task cannot change boards: a
// board_id other than the task's own is reported as not found.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := checkPlacement(req.Column, *req.Position); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, taskID, domain.TaskPatch{
		BoardID:  req.BoardID,
		Column:   req.Column,
		Position: *req.Position,
		Content:  req.Content,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

func checkPlacement(col domain.ColumnKey, position int) error {
	if !col.Valid() {
		return domain.ErrInvalidColumn
	}
	if position < 0 {
		return domain.ErrInvalidPosition
	}
	return nil
}
