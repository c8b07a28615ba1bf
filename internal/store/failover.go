package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// Failover composes a durable primary with an ephemeral secondary. Every
// call tries the primary first and transparently retries the secondary once
// when the primary errors. Selection is per call — there is no cross-call
// affinity, so a recovered primary is used again immediately.
//
// ErrNotFound is a domain answer, not a backend failure, and is never
// retried against the secondary.
type Failover struct {
	primary   Store
	secondary Store
}

// NewFailover wraps primary with secondary as the per-call fallback.
func NewFailover(primary, secondary Store) *Failover {
	return &Failover{primary: primary, secondary: secondary}
}

// retriable reports whether err warrants falling back to the secondary.
func retriable(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound)
}

func logFallback(op string, err error) {
	log.Warn().Err(err).Str("op", op).Msg("primary store failed, using fallback")
}

// AddMessage appends through the primary, falling back on error.
func (f *Failover) AddMessage(ctx context.Context, m *domain.Message) (string, error) {
	id, err := f.primary.AddMessage(ctx, m)
	if retriable(err) {
		logFallback("add_message", err)
		return f.secondary.AddMessage(ctx, m)
	}
	return id, err
}

// AddRecipe appends through the primary, falling back on error.
func (f *Failover) AddRecipe(ctx context.Context, r *domain.Recipe) (string, error) {
	id, err := f.primary.AddRecipe(ctx, r)
	if retriable(err) {
		logFallback("add_recipe", err)
		return f.secondary.AddRecipe(ctx, r)
	}
	return id, err
}

// RecentMessages reads from the primary, falling back on error.
func (f *Failover) RecentMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	out, err := f.primary.RecentMessages(ctx, limit)
	if retriable(err) {
		logFallback("recent_messages", err)
		return f.secondary.RecentMessages(ctx, limit)
	}
	return out, err
}

// Vote applies the vote on the primary, falling back on error.
func (f *Failover) Vote(ctx context.Context, messageID, username, voteType string) (int, error) {
	n, err := f.primary.Vote(ctx, messageID, username, voteType)
	if retriable(err) {
		logFallback("vote", err)
		return f.secondary.Vote(ctx, messageID, username, voteType)
	}
	return n, err
}

// ClearAll clears both backends; the secondary is cleared even when the
// primary succeeds so stale fallback state cannot resurface later.
func (f *Failover) ClearAll(ctx context.Context) error {
	perr := f.primary.ClearAll(ctx)
	serr := f.secondary.ClearAll(ctx)
	if perr != nil {
		if serr != nil {
			return perr
		}
		logFallback("clear_all", perr)
	}
	return serr
}

// HasMessagesFrom reads from the primary, falling back on error.
func (f *Failover) HasMessagesFrom(ctx context.Context, username string) (bool, error) {
	ok, err := f.primary.HasMessagesFrom(ctx, username)
	if retriable(err) {
		logFallback("has_messages_from", err)
		return f.secondary.HasMessagesFrom(ctx, username)
	}
	return ok, err
}
