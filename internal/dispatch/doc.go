// Package dispatch delivers the pending updates produced by the board engine
// to the task store.
//
// Each update is one independent job. Jobs wait in an unbounded in-memory FIFO
// and are executed by a fixed pool of workers. A failed call is logged,
// counted and reported to the optional result handler; it is never retried
// and the local projection is never rolled back. Calls that were already
// issued are not cancelled when the dispatcher stops.
package dispatch
