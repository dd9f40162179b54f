package repository

import (
	"context"
	"errors"
	"time"

	"vipgate/internal/cache"
	"vipgate/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users, favorites and
// password reset tokens.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user carries the address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ListVipUsers(ctx context.Context) ([]models.User, error)
	ListVipDisabledUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountActiveVips(ctx context.Context, now time.Time) (int64, error)
	CountUsersSince(ctx context.Context, since time.Time) (int64, error)

	AddFavorite(ctx context.Context, userID, contentItemID uint) error
	RemoveFavorite(ctx context.Context, userID, contentItemID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]models.ContentItem, error)

	CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error
	GetPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error)
	MarkPasswordResetUsed(ctx context.Context, reset *models.PasswordReset) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User with this email already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateStats(ctx)
	return nil
}

// Update writes the user back and drops the caches its fields feed: the user
// profile entry and the stats counters (VIP transitions change the VIP count).
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	cache.InvalidateStats(ctx)
	return nil
}

// ListVipUsers returns every user holding a VIP grant, expired grants first.
// Ascending expiration order puts lapsed dates at the top, which is exactly
// the triage order the admin panel wants.
func (r *userRepository) ListVipUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("vip_expiration_date IS NOT NULL AND vip_disabled = ?", false).
		Order("vip_expiration_date ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) ListVipDisabledUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("vip_disabled = ?", true).
		Order("updated_at DESC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *userRepository) CountActiveVips(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("vip_expiration_date > ? AND vip_disabled = ?", now, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *userRepository) CountUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *userRepository) AddFavorite(ctx context.Context, userID, contentItemID uint) error {
	fav := models.Favorite{UserID: userID, ContentItemID: contentItemID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Favoriting twice is a no-op.
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) RemoveFavorite(ctx context.Context, userID, contentItemID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND content_item_id = ?", userID, contentItemID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", contentItemID)
	}
	return nil
}

func (r *userRepository) ListFavorites(ctx context.Context, userID uint) ([]models.ContentItem, error) {
	var items []models.ContentItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.content_item_id = content_items.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *userRepository) CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error {
	if err := r.db.WithContext(ctx).Create(reset).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reset, nil
}

func (r *userRepository) MarkPasswordResetUsed(ctx context.Context, reset *models.PasswordReset) error {
	now := time.Now()
	reset.UsedAt = &now
	if err := r.db.WithContext(ctx).Save(reset).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
