// Package domain contains the core business entities of the task board:
// users, boards and the tasks arranged in a board's fixed columns.
// It is independent of storage, transport and presentation concerns.
package domain
