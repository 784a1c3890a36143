// Package api handles incoming HTTP requests for users, boards and tasks:
// routing parameters, request validation and response formatting. Handlers
// call the stores in internal/store directly and translate their errors
// into status codes with MapErrorToStatusCode, so clients never see
// internal error text.
package api
