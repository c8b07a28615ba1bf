// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// CreateRecipe inserts a new recipe row, assigning identity and timestamp.
func CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) (string, error) {
	r.ID = uuid.NewString()
	r.Votes = 0
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return "", err
	}
	return r.ID, nil
}

// ClearRecipes deletes every recipe row.
func ClearRecipes(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Where("1 = 1").Delete(&domain.Recipe{}).Error
}
