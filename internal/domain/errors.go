package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Draw errors
	ErrMsgUnknownOrExhaustedGroup  = "group has no remaining prizes"
	ErrMsgInsufficientParticipants = "not enough remaining participants for group"
	ErrMsgGroupInProgress          = "another group draw is in progress"
	ErrMsgRandomSourceFailed       = "random source failed"

	// Session errors
	ErrMsgSessionNotFound = "session not found"

	// Dataset errors
	ErrMsgInvalidDataset = "invalid dataset"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Draw errors
	ErrUnknownOrExhaustedGroup  = errors.New(ErrMsgUnknownOrExhaustedGroup)
	ErrInsufficientParticipants = errors.New(ErrMsgInsufficientParticipants)
	ErrGroupInProgress          = errors.New(ErrMsgGroupInProgress)
	ErrRandomSourceFailed       = errors.New(ErrMsgRandomSourceFailed)

	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Dataset errors
	ErrInvalidDataset = errors.New(ErrMsgInvalidDataset)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
