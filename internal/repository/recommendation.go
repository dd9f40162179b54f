package repository

import (
	"context"
	"errors"

	"vipgate/internal/cache"
	"vipgate/internal/models"

	"gorm.io/gorm"
)

// RecommendationRepository defines persistence operations for content
// recommendations submitted by users.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	GetByID(ctx context.Context, id uint) (*models.Recommendation, error)
	List(ctx context.Context, status models.RecommendationStatus, limit, offset int) ([]models.Recommendation, int64, error)
	ListByEmail(ctx context.Context, email string) ([]models.Recommendation, error)
	// SetStatusIfPending moves a pending recommendation to the given status.
	// It returns false when the row was already reviewed.
	SetStatusIfPending(ctx context.Context, id uint, status models.RecommendationStatus, reviewerID uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository returns a new RecommendationRepository implementation.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStats(ctx)
	return nil
}

func (r *recommendationRepository) GetByID(ctx context.Context, id uint) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recommendation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rec, nil
}

func (r *recommendationRepository) List(ctx context.Context, status models.RecommendationStatus, limit, offset int) ([]models.Recommendation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recommendation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var recs []models.Recommendation
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return recs, total, nil
}

func (r *recommendationRepository) ListByEmail(ctx context.Context, email string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&recs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recs, nil
}

// SetStatusIfPending is a compare-and-swap on status: the WHERE guard keeps
// two admins from double-reviewing the same submission.
func (r *recommendationRepository) SetStatusIfPending(ctx context.Context, id uint, status models.RecommendationStatus, reviewerID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("id = ? AND status = ?", id, models.RecommendationStatusPending).
		Updates(map[string]any{
			"status":              status,
			"reviewed_by_user_id": reviewerID,
		})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *recommendationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recommendation{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
