package repository

import (
	"context"

	"vipgate/internal/cache"
	"vipgate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for emoji reaction
// aggregates. Counts are stored per (content item, emoji) pair; there is no
// per-user reaction record.
type ReactionRepository interface {
	ListByContentItem(ctx context.Context, contentItemID uint) ([]models.Reaction, error)
	Increment(ctx context.Context, contentItemID uint, name string) (*models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) ListByContentItem(ctx context.Context, contentItemID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	key := cache.ReactionsKey(contentItemID)

	err := cache.Aside(ctx, key, &reactions, cache.ReactionsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("content_item_id = ?", contentItemID).
			Order("count DESC, name ASC").
			Find(&reactions).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

// Increment bumps the counter for the given emoji in a single upsert so
// concurrent reactions never lose increments.
func (r *reactionRepository) Increment(ctx context.Context, contentItemID uint, name string) (*models.Reaction, error) {
	reaction := models.Reaction{
		ContentItemID: contentItemID,
		Name:          name,
		Count:         1,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_item_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count": gorm.Expr("reactions.count + 1"),
		}),
	}).Create(&reaction).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.ReactionsKey(contentItemID))

	// The upsert does not report the final count on conflict, read it back.
	var current models.Reaction
	if err := r.db.WithContext(ctx).
		Where("content_item_id = ? AND name = ?", contentItemID, name).
		First(&current).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &current, nil
}
