// Package store defines the persistence contract the chat and recipe
// services depend on, together with its two interchangeable backends: a
// durable SQLite-backed store and an ephemeral in-memory store. A Failover
// wrapper composes the two, trying the durable backend first on every call.
package store

import (
	"context"
	"errors"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// ErrNotFound is returned by Vote when the target message does not exist.
var ErrNotFound = errors.New("message not found")

// Store is the contract both backends satisfy. Implementations assign
// identity and creation timestamps on append and initialize vote counters to
// zero; callers never pick IDs themselves.
//
// All methods are safe for concurrent use. Vote is atomic per
// (messageID, username) key: concurrent votes on the same message serialize
// rather than losing updates.
type Store interface {
	// AddMessage appends a chat message and returns its assigned ID.
	AddMessage(ctx context.Context, m *domain.Message) (string, error)
	// AddRecipe appends a generated recipe and returns its assigned ID.
	AddRecipe(ctx context.Context, r *domain.Recipe) (string, error)
	// RecentMessages returns the newest limit messages, oldest first.
	RecentMessages(ctx context.Context, limit int) ([]domain.Message, error)
	// Vote applies a toggling vote and returns the updated counter.
	// Returns ErrNotFound when the message does not exist.
	Vote(ctx context.Context, messageID, username, voteType string) (int, error)
	// ClearAll wipes messages, recipes, and votes.
	ClearAll(ctx context.Context) error
	// HasMessagesFrom reports whether any message by username exists.
	HasMessagesFrom(ctx context.Context, username string) (bool, error)
}
