// Package client is the HTTP client of the task board API. It implements the
// auth service, board directory and task store contracts used by the board
// shell, authenticating every call with a bearer token.
package client
