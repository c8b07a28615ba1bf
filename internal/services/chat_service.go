// Package services – ChatService
//
// This file implements ChatService, which owns the chat message lifecycle:
// posting (including the /recipe and /clear slash commands), listing recent
// history, voting, and the first-time/returning welcome notice. Command
// dispatch is business logic and lives here so handlers stay transport-thin.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/store"
)

const (
	systemUsername = "[SYSTEM]"

	clearCommand        = "/clear"
	recipeCommandPrefix = "/recipe "
)

// PostOutcome describes what a Post call did. Exactly one of the three shapes
// is populated: a plain message ID, Cleared, or the recipe bundle.
type PostOutcome struct {
	// MessageID is set for plain (non-command) messages.
	MessageID string
	// Cleared is true when the content was the /clear command.
	Cleared bool
	// CommandMessageID and Generated are set for /recipe commands.
	CommandMessageID string
	Generated        *GeneratedRecipe
}

// ChatService provides message-level operations over the store.
type ChatService struct {
	Store store.Store
	// Recipes runs the generation pipeline for /recipe commands.
	Recipes *RecipeService
	// MaxContentRunes caps posted content by rune length; 0 disables the cap.
	MaxContentRunes int
}

// Post validates and dispatches a posted message.
//
//   - "/clear" (trimmed, case-insensitive) wipes the store.
//   - "/recipe <ingredients>" persists the command message, runs the
//     generation pipeline as AI_BARISTA, and persists the recipe
//     announcement. A hard generation failure records a system error message
//     and surfaces the error.
//   - anything else is appended as a regular message (kind defaults to user).
//
// A kind outside the allowed set is rejected with ErrInvalidKind before
// anything is written.
func (s *ChatService) Post(ctx context.Context, username, content, kind string, isCommand bool) (*PostOutcome, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Post",
		trace.WithAttributes(attribute.String("chat.username", username)),
	)
	defer span.End()

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(trimmed) > s.MaxContentRunes {
		return nil, ErrTooLong
	}
	switch kind {
	case "", domain.KindUser, domain.KindBot, domain.KindSystem:
	default:
		return nil, ErrInvalidKind
	}

	if strings.EqualFold(trimmed, clearCommand) {
		if err := s.Store.ClearAll(ctx); err != nil {
			return nil, err
		}
		return &PostOutcome{Cleared: true}, nil
	}

	if strings.HasPrefix(trimmed, recipeCommandPrefix) {
		return s.postRecipeCommand(ctx, username, trimmed)
	}

	if kind == "" {
		kind = domain.KindUser
	}
	id, err := s.Store.AddMessage(ctx, &domain.Message{
		Username:  username,
		Content:   content,
		Kind:      kind,
		IsCommand: isCommand,
	})
	if err != nil {
		return nil, err
	}
	return &PostOutcome{MessageID: id}, nil
}

// postRecipeCommand persists the command message and runs the pipeline.
func (s *ChatService) postRecipeCommand(ctx context.Context, username, content string) (*PostOutcome, error) {
	ingredients := strings.TrimSpace(strings.TrimPrefix(content, recipeCommandPrefix))

	commandID, err := s.Store.AddMessage(ctx, &domain.Message{
		Username:  username,
		Content:   content,
		Kind:      domain.KindUser,
		IsCommand: true,
	})
	if err != nil {
		return nil, err
	}

	gen, err := s.Recipes.Generate(ctx, ingredients, CreatorBarista)
	if err != nil {
		// Best effort: the failure notice matters less than reporting the error.
		_, _ = s.Store.AddMessage(ctx, &domain.Message{
			Username: systemUsername,
			Content:  "Error: Recipe generation failed. Please try again.",
			Kind:     domain.KindSystem,
		})
		return nil, err
	}

	return &PostOutcome{CommandMessageID: commandID, Generated: gen}, nil
}

// Recent returns the newest limit messages, oldest first.
func (s *ChatService) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	return s.Store.RecentMessages(ctx, limit)
}

// Clear wipes all messages, recipes, and votes.
func (s *ChatService) Clear(ctx context.Context) error {
	return s.Store.ClearAll(ctx)
}

// Vote validates and applies a vote, returning the updated counter.
func (s *ChatService) Vote(ctx context.Context, messageID, username, voteType string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, ErrInvalidVote
	}
	if voteType != domain.VoteUp && voteType != domain.VoteDown {
		return 0, ErrInvalidVote
	}
	n, err := s.Store.Vote(ctx, messageID, username, voteType)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrMessageNotFound
	}
	return n, err
}

// Welcome records a system notice for username and reports whether the store
// already knew them. The check runs before the notice is written; the notice
// is attributed to the username itself, so the first welcome marks them as
// seen and any later welcome reports returning.
func (s *ChatService) Welcome(ctx context.Context, username string) (bool, error) {
	returning, err := s.Store.HasMessagesFrom(ctx, username)
	if err != nil {
		return false, err
	}

	content := "New user " + username + " connected to the terminal. Type /help for commands."
	if returning {
		content = "Welcome back, " + username + "."
	}
	_, err = s.Store.AddMessage(ctx, &domain.Message{
		Username: username,
		Content:  content,
		Kind:     domain.KindSystem,
	})
	return returning, err
}
