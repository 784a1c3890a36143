package board

import (
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// Move relocates taskID from srcIdx in src to dstIdx in dst. dstIdx is
// clamped to the destination's bounds after the task has been removed.
//
// Moving a task onto its own slot is a no-op and returns p unchanged with no
// updates. Otherwise every task in the touched column(s) is renumbered and
// reported as a PendingUpdate, source column first. A same-column move
// renumbers that column once.
func Move(
	p Projection,
	src domain.ColumnKey,
	srcIdx int,
	dst domain.ColumnKey,
	dstIdx int,
	taskID uuid.UUID,
) (Projection, []PendingUpdate, error) {
	if src == dst && srcIdx == dstIdx {
		return p, nil, nil
	}

	if !src.Valid() || !dst.Valid() {
		return p, nil, ErrUnknownColumn
	}

	srcSeq := p.Columns[src]
	if srcIdx < 0 || srcIdx >= len(srcSeq) || srcSeq[srcIdx] != taskID {
		return p, nil, ErrTaskNotAtSource
	}

	next := p.clone()
	remaining := removeAt(srcSeq, srcIdx)

	var updates []PendingUpdate
	if src == dst {
		next.Columns[src] = insertAt(remaining, dstIdx, taskID)
		updates = next.renumber(src, updates)
		return next, updates, nil
	}

	next.Columns[src] = remaining
	next.Columns[dst] = insertAt(p.Columns[dst], dstIdx, taskID)
	updates = next.renumber(src, updates)
	updates = next.renumber(dst, updates)
	return next, updates, nil
}

func removeAt(seq []uuid.UUID, i int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...)
}

func insertAt(seq []uuid.UUID, i int, id uuid.UUID) []uuid.UUID {
	if i < 0 {
		i = 0
	}
	if i > len(seq) {
		i = len(seq)
	}
	out := make([]uuid.UUID, 0, len(seq)+1)
	out = append(out, seq[:i]...)
	out = append(out, id)
	return append(out, seq[i:]...)
}
