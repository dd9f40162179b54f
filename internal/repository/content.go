// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"vipgate/internal/cache"
	"vipgate/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ContentRepository defines persistence operations for content items.
type ContentRepository interface {
	ListByTier(ctx context.Context, tier models.ContentTier) ([]models.ContentItem, error)
	GetByID(ctx context.Context, id uint) (*models.ContentItem, error)
	Create(ctx context.Context, item *models.ContentItem) error
	Update(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context, tier models.ContentTier) ([]string, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a new ContentRepository implementation.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListByTier(ctx context.Context, tier models.ContentTier) ([]models.ContentItem, error) {
	var items []models.ContentItem
	key := cache.ContentListKey(string(tier))

	err := cache.Aside(ctx, key, &items, cache.ContentListTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("tier = ?", tier).
			Order("post_date DESC, id DESC").
			Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	err := cache.Aside(ctx, cache.ContentItemKey(id), &item, cache.ContentItemTTL, func() error {
		if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Content item", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateContentList(ctx, string(item.Tier))
	return nil
}

func (r *contentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ContentItemKey(item.ID))
	cache.InvalidateContentList(ctx, string(item.Tier))
	return nil
}

// Delete removes the row outright; content items are never soft deleted, the
// item must disappear from the next fetch.
func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.ContentItem{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ContentItemKey(id))
	cache.InvalidateContentList(ctx, string(item.Tier))
	return nil
}

func (r *contentRepository) Categories(ctx context.Context, tier models.ContentTier) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("tier = ? AND category <> ''", tier).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation SQLSTATE 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite and mocked drivers only surface the message.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
