// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the vote operation.
//
// The repository follows a "thin" approach elsewhere, but voting is the one
// place that needs a read-modify-write over two tables, so the whole
// adjustment runs inside a single transaction here: concurrent votes on the
// same (message, username) key serialize instead of losing updates.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// ApplyVote records username's vote on messageID and returns the updated
// counter.
//
// Semantics (toggle model):
//   - no live vote for the key          → insert, counter ±1
//   - live vote in the same direction   → retract, counter moves back ±1
//   - live vote in the other direction  → switch, counter moves ±2
//
// voteType must already be validated to "up" or "down" by the caller.
// Returns ErrNotFound when the message does not exist; no rows are touched in
// that case.
func ApplyVote(ctx context.Context, db *gorm.DB, messageID, username, voteType string) (int, error) {
	var votes int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg domain.Message
		if err := tx.Where("id = ?", messageID).First(&msg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		delta := 0
		var existing domain.Vote
		err := tx.Where("message_id = ? AND username = ?", messageID, username).First(&existing).Error
		switch {
		case err == nil && existing.VoteType == voteType:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -direction(voteType)
		case err == nil:
			existing.VoteType = voteType
			existing.UpdatedAt = time.Now().UTC()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			delta = 2 * direction(voteType)
		case errors.Is(err, gorm.ErrRecordNotFound):
			v := domain.Vote{
				ID:        uuid.NewString(),
				MessageID: messageID,
				Username:  username,
				VoteType:  voteType,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
			delta = direction(voteType)
		default:
			return err
		}

		votes = msg.Votes + delta
		return tx.Model(&domain.Message{}).Where("id = ?", messageID).
			Update("votes", votes).Error
	})
	if err != nil {
		return 0, err
	}
	return votes, nil
}

// direction maps a vote type to its counter sign.
func direction(voteType string) int {
	if voteType == domain.VoteDown {
		return -1
	}
	return 1
}
