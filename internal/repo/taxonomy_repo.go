// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Category
// and Label taxonomy, consumed by the list filter and the edit form.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// ListCategories returns all categories ordered by display name ascending.
// It returns an empty slice when no categories exist.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).
		Order("category_name asc").
		Find(&out).Error
	return out, err
}

// ListLabels returns all labels ordered by display name ascending.
// It returns an empty slice when no labels exist.
func ListLabels(ctx context.Context, db *gorm.DB) ([]domain.Label, error) {
	var out []domain.Label
	err := db.WithContext(ctx).
		Order("label_name asc").
		Find(&out).Error
	return out, err
}
