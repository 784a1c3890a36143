// Package board implements the reorder engine of the task board.
//
// A Projection is the in-memory view of one board: the ordered task ids of
// each fixed column plus the task records they refer to. All operations are
// pure. They never mutate the projection they are given; instead they return
// a new projection together with the persistence effects (PendingUpdate,
// PendingCreate) that the caller is responsible for executing.
//
// After Load and after every Move, the tasks of each column carry dense
// 0-based positions matching their index in the column sequence.
package board
