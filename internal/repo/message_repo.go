// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// CreateMessage inserts a new message row, assigning identity and timestamp.
// The votes counter always starts at zero regardless of the input value.
func CreateMessage(ctx context.Context, db *gorm.DB, m *domain.Message) (string, error) {
	m.ID = uuid.NewString()
	m.Votes = 0
	m.CreatedAt = time.Now().UTC()
	if m.Kind == "" {
		m.Kind = domain.KindUser
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

// RecentMessages returns the newest limit messages in chronological order
// (oldest of the selection first), matching what the terminal client renders.
func RecentMessages(ctx context.Context, db *gorm.DB, limit int) ([]domain.Message, error) {
	var newest []domain.Message
	q := db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&newest).Error; err != nil {
		return nil, err
	}
	// Reverse into chronological order.
	out := make([]domain.Message, len(newest))
	for i, m := range newest {
		out[len(newest)-1-i] = m
	}
	return out, nil
}

// GetMessage fetches a message by ID, mapping a missing row to ErrNotFound.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// CountMessagesFrom uses a raw COUNT so a missing table surfaces as an error.
func CountMessagesFrom(ctx context.Context, db *gorm.DB, username string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM messages WHERE username = ?", username).
		Scan(&total).Error
	return total, err
}

// ClearMessages deletes every message row.
func ClearMessages(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Where("1 = 1").Delete(&domain.Message{}).Error
}
