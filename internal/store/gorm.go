package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/repo"
)

// GormStore is the durable backend, delegating to the repo package. It keeps
// services decoupled from GORM while reusing the repository functions.
type GormStore struct {
	db *gorm.DB
}

// NewGorm wraps an opened (and migrated) GORM handle in the Store contract.
func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AddMessage appends a chat message row.
func (s *GormStore) AddMessage(ctx context.Context, m *domain.Message) (string, error) {
	return repo.CreateMessage(ctx, s.db, m)
}

// AddRecipe appends a recipe row.
func (s *GormStore) AddRecipe(ctx context.Context, r *domain.Recipe) (string, error) {
	return repo.CreateRecipe(ctx, s.db, r)
}

// RecentMessages returns the newest limit messages, oldest first.
func (s *GormStore) RecentMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	return repo.RecentMessages(ctx, s.db, limit)
}

// Vote applies a toggling vote inside a transaction.
func (s *GormStore) Vote(ctx context.Context, messageID, username, voteType string) (int, error) {
	n, err := repo.ApplyVote(ctx, s.db, messageID, username, voteType)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrNotFound
	}
	return n, err
}

// ClearAll wipes messages, recipes, and votes in one transaction.
func (s *GormStore) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.ClearMessages(ctx, tx); err != nil {
			return err
		}
		if err := repo.ClearRecipes(ctx, tx); err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.Vote{}).Error
	})
}

// HasMessagesFrom reports whether username has posted before.
func (s *GormStore) HasMessagesFrom(ctx context.Context, username string) (bool, error) {
	n, err := repo.CountMessagesFrom(ctx, s.db, username)
	return n > 0, err
}
