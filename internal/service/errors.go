package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserContextRequired is returned when user context is not available
	ErrUserContextRequired = errors.New("user context required")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrBroadcastNotFound is returned when a broadcast is not found
	ErrBroadcastNotFound = errors.New("broadcast not found")

	// ErrNoAttachment is returned when a broadcast has no stored attachment
	ErrNoAttachment = errors.New("broadcast has no attachment")

	// ErrEmptyAudience is returned when targeting resolves to nobody
	ErrEmptyAudience = errors.New("targeting resolves to an empty audience")

	// ErrAttachmentTooLarge is returned when an upload exceeds the size cap
	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum size")

	// ErrRequestNotFound is returned when a visit request is not found
	ErrRequestNotFound = errors.New("visit request not found")

	// ErrRequestNotPending is returned when deciding an already-decided request
	ErrRequestNotPending = errors.New("visit request is not pending")
)
