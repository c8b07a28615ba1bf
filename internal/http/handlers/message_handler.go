// Message HTTP handlers.
//
// This file exposes REST endpoints for the terminal chat feed:
//   - GET  /messages        (list recent messages, oldest first)
//   - POST /messages        (post a message; slash commands dispatch here)
//   - POST /messages/clear  (wipe the feed)
//   - POST /welcome         (emit the first-time/returning connection notice)
//
// Handlers are transport-thin:
//   - validate & normalize inputs
//   - delegate to application services (ChatService, RecipeService)
//   - translate service sentinels into HTTP statuses and stable error codes
//
// Slash commands ("/clear", "/recipe <ingredients>") are interpreted by the
// service layer, not here; the handler only shapes the outcome into the right
// response body.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/services"
	"github.com/neuralbrew/go-brew-backend/internal/utils"
)

//
// Service contracts
//

// ChatService defines the message-level operations the handlers depend on.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Post validates and dispatches a posted message, including slash commands.
	Post(ctx context.Context, username, content, kind string, isCommand bool) (*services.PostOutcome, error)
	// Recent returns the newest limit messages in chronological order.
	Recent(ctx context.Context, limit int) ([]domain.Message, error)
	// Clear wipes all messages, recipes, and votes.
	Clear(ctx context.Context) error
	// Vote applies a toggling vote and returns the updated counter.
	Vote(ctx context.Context, messageID, username, voteType string) (int, error)
	// Welcome records a connection notice and reports whether the username
	// was already known.
	Welcome(ctx context.Context, username string) (bool, error)
}

// RecipeService defines the generation operations the handlers depend on.
type RecipeService interface {
	// Generate runs the full pipeline for free-form ingredient text.
	Generate(ctx context.Context, rawIngredients, creator string) (*services.GeneratedRecipe, error)
	// GenerateAuto runs the pipeline with randomly sampled ingredients.
	GenerateAuto(ctx context.Context) (*services.GeneratedRecipe, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for messages, votes, and recipes.
// It is transport-only; business logic lives in the services.
type Handlers struct {
	chatSvc   ChatService
	recipeSvc RecipeService

	// messageLimit caps the GET /messages page size.
	messageLimit int
}

// New constructs a Handlers instance bound to the given services.
// messageLimit caps list sizes; values < 1 fall back to 100.
func New(chatSvc ChatService, recipeSvc RecipeService, messageLimit int) *Handlers {
	if messageLimit < 1 {
		messageLimit = 100
	}
	return &Handlers{chatSvc: chatSvc, recipeSvc: recipeSvc, messageLimit: messageLimit}
}

//
// DTOs
//

// PostMessageRequest is the JSON payload for posting a chat message.
type PostMessageRequest struct {
	// Username is the display name of the author. It must be non-empty.
	Username string `json:"username" binding:"required,min=1" example:"neo"`
	// Content is the message text or slash command. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"/recipe milk, cinnamon"`
	// Kind optionally overrides the message kind; defaults to "user".
	Kind string `json:"kind,omitempty" example:"user"`
	// IsCommand marks the message as a slash command for rendering purposes.
	IsCommand bool `json:"isCommand,omitempty"`
}

// PostMessageResponse is returned for a plain (non-command) post.
type PostMessageResponse struct {
	MessageID string `json:"messageId"`
}

// ClearedResponse is returned when the store was wiped, either via the
// "/clear" command or the explicit clear endpoint.
type ClearedResponse struct {
	Cleared bool `json:"cleared"`
}

// RecipeCommandResponse bundles everything a "/recipe" command produced: the
// persisted command message, the bot announcement, and the structured recipe.
type RecipeCommandResponse struct {
	CommandMessageID string         `json:"commandMessageId"`
	RecipeMessageID  string         `json:"recipeMessageId"`
	RecipeID         string         `json:"recipeId"`
	Recipe           *domain.Recipe `json:"recipe"`
}

// WelcomeRequest is the JSON payload for the connection notice endpoint.
type WelcomeRequest struct {
	Username string `json:"username" binding:"required,min=1" example:"neo"`
}

// WelcomeResponse reports whether the username was already known.
type WelcomeResponse struct {
	Welcomed  bool `json:"welcomed"`
	Returning bool `json:"returning"`
}

//
// Handlers
//

// ListMessages returns the most recent messages, oldest first.
//
// The optional ?limit query is clamped to [1, messageLimit]; the default is
// the full configured limit. The body is a bare JSON array so the terminal
// client can replay it line by line.
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()

	limit := utils.AtoiDefault(c.Query("limit"), h.messageLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > h.messageLimit {
		limit = h.messageLimit
	}

	msgs, err := h.chatSvc.Recent(ctx, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	ok(c, http.StatusOK, msgs)
}

// PostMessage appends a chat message, interpreting slash commands.
//
// The response body depends on what the post did:
//   - plain message:      PostMessageResponse
//   - "/clear" command:   ClearedResponse
//   - "/recipe" command:  RecipeCommandResponse
func (h *Handlers) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and content required")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username required")
		return
	}

	out, err := h.chatSvc.Post(ctx, req.Username, req.Content, req.Kind, req.IsCommand)
	if err != nil {
		switch {
		case err == services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		case err == services.ErrTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content too long")
		case err == services.ErrInvalidKind:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be 'user', 'bot', or 'system'")
		case err == services.ErrProviderUnconfigured:
			fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodePostFailed, err.Error())
		}
		return
	}

	switch {
	case out.Cleared:
		ok(c, http.StatusOK, ClearedResponse{Cleared: true})
	case out.Generated != nil:
		ok(c, http.StatusOK, RecipeCommandResponse{
			CommandMessageID: out.CommandMessageID,
			RecipeMessageID:  out.Generated.MessageID,
			RecipeID:         out.Generated.Recipe.ID,
			Recipe:           out.Generated.Recipe,
		})
	default:
		ok(c, http.StatusOK, PostMessageResponse{MessageID: out.MessageID})
	}
}

// ClearMessages wipes all messages, recipes, and votes. Equivalent to posting
// the "/clear" command.
func (h *Handlers) ClearMessages(c *gin.Context) {
	if err := h.chatSvc.Clear(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ClearedResponse{Cleared: true})
}

// Welcome emits the connection notice for a username and reports whether the
// terminal has seen them before.
func (h *Handlers) Welcome(c *gin.Context) {
	var req WelcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username required")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username required")
		return
	}

	returning, err := h.chatSvc.Welcome(c.Request.Context(), req.Username)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, WelcomeResponse{Welcomed: true, Returning: returning})
}
