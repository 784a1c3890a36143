package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when task content is empty after trimming.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidColumn is returned when a column key is not one of the fixed columns.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidPosition is returned for negative task positions.
	ErrInvalidPosition = errors.New("position cannot be negative")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
