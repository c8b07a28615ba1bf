// Package services defines the business logic for chat messages, recipe
// generation, and voting. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrEmptyMessage is returned when a posted message has no content after
	// trimming.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrTooLong is returned when a posted message exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("message content too long")

	// ErrInvalidKind is returned when a posted message carries a kind outside
	// the allowed set ("user", "bot", "system"). Rejecting it here keeps the
	// value from ever reaching the store's check constraint.
	ErrInvalidKind = errors.New("kind must be 'user', 'bot', or 'system'")

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrInvalidVote is returned when a vote type is outside the allowed set
	// ("up" or "down") or the voter username is missing.
	ErrInvalidVote = errors.New("vote must be 'up' or 'down' with a username")

	// ErrProviderUnconfigured is returned when recipe generation is requested
	// but no provider credentials were ever configured. Falling back to
	// canned content would be misleading in that case, so the pipeline fails
	// hard instead.
	ErrProviderUnconfigured = errors.New("generation provider not configured")
)
