package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// TaskListEvictor drops cached task lists. It is satisfied by the Redis
// task cache.
type TaskListEvictor interface {
	Evict(ctx context.Context, ownerID, boardID uuid.UUID)
}

// BoardHandler handles the board directory endpoints.
type BoardHandler struct {
	boards  store.BoardStore
	tx      store.Transactor
	evictor TaskListEvictor
}

// NewBoardHandler creates a BoardHandler. Without a transactor deletes run
// directly on boards; evictor may be nil when task lists are not cached.
func NewBoardHandler(boards store.BoardStore, tx store.Transactor, evictor TaskListEvictor) *BoardHandler {
	return &BoardHandler{boards: boards, tx: tx, evictor: evictor}
}

// List handles GET /api/boards.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	boards, err := h.boards.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list boards")
		return
	}

	out := make([]BoardResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, boardToResponse(b))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Create handles POST /api/boards.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := domain.NewBoard(userID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.boards.Create(r.Context(), board); err != nil {
		HandleAPIError(w, r, err, "Failed to create board")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, boardToResponse(*board))
}

// Delete handles DELETE /api/boards/{id}. Tasks of the board go with it.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteBoard(r.Context(), userID, boardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	// Only after commit: a rolled back delete keeps its cached tasks valid.
	if h.evictor != nil {
		h.evictor.Evict(r.Context(), userID, boardID)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: "Board deleted"})
}

// deleteBoard removes the board and its cascaded tasks in one transaction.
func (h *BoardHandler) deleteBoard(ctx context.Context, ownerID, boardID uuid.UUID) error {
	if h.tx == nil {
		return h.boards.Delete(ctx, ownerID, boardID)
	}
	return h.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return h.boards.WithTx(tx).Delete(ctx, ownerID, boardID)
	})
}
