// Package domain defines the persistence models for chat messages, generated
// recipes, and per-message votes. These types are mapped with GORM and form
// the core data layer of the café backend.
package domain

import (
	"time"
)

// Message kinds. The terminal client renders each kind differently.
const (
	KindUser   = "user"
	KindBot    = "bot"
	KindSystem = "system"
)

// Vote directions accepted by the voting endpoint.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Message represents a single line in the terminal chat: a user post, a bot
// recipe announcement, or a system notice.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: display name of the author; bot/system authors use bracketed
//     names such as "[AI_BARISTA]".
//   - Content: plain text, or the formatted rendering of a recipe.
//   - Kind: "user", "bot", or "system" (enforced by DB constraint).
//   - Votes: running vote counter, mutated only through the vote operation.
//   - RecipeID: optional reference to the recipe a bot message announces.
//   - IsCommand: true when the content was a slash command (e.g. "/recipe …").
//   - CreatedAt: insertion timestamp, assigned by the store.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username"  gorm:"type:varchar(64);not null;index"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	Kind      string    `json:"kind"      gorm:"type:varchar(16);not null;default:'user';check:kind IN ('user','bot','system')"`
	Votes     int       `json:"votes"     gorm:"not null;default:0"`
	RecipeID  *string   `json:"recipeId,omitempty" gorm:"type:char(36)"`
	IsCommand bool      `json:"isCommand" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"timestamp" gorm:"index:idx_messages_created"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Recipe is a persisted generated artifact: a structured recipe with its
// ingredient and effect lists. Ingredients and Effects are stored as JSON via
// the GORM serializer, preserving order.
//
// Invariant: Ingredients contains no two entries that are equal
// case-insensitively, and every user-supplied ingredient of the originating
// request appears before any provider-invented one (enforced upstream by the
// reconciler before the row is written).
type Recipe struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"         gorm:"type:varchar(255);not null"`
	Ingredients  []string  `json:"ingredients"  gorm:"serializer:json;not null"`
	Effects      []string  `json:"effects"      gorm:"serializer:json;not null"`
	Instructions string    `json:"instructions" gorm:"type:text;not null"`
	CreatedBy    string    `json:"createdBy"    gorm:"type:varchar(64);not null"`
	MessageID    *string   `json:"messageId,omitempty" gorm:"type:char(36)"`
	Votes        int       `json:"votes"        gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"timestamp"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// Vote records a single user's live vote on a message. A user holds at most
// one vote per message (unique index); voting the same direction again
// retracts it, voting the other direction switches it.
type Vote struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	MessageID string    `json:"messageId"  gorm:"type:char(36);not null;index;uniqueIndex:ux_votes_message_user"`
	Username  string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_votes_message_user"`
	VoteType  string    `json:"voteType"   gorm:"type:varchar(8);not null;check:vote_type IN ('up','down')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Vote.
func (Vote) TableName() string { return "votes" }
