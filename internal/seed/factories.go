// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"vipgate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var contentCategories = []string{
	"Tutorials", "Interviews", "Live Sessions", "Deep Dives",
	"News", "Reviews", "Behind the Scenes",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Seeded-Password-1!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// CreateVipUser persists a user holding a VIP grant. daysLeft may be negative
// to produce an already-lapsed grant.
func (f *Factory) CreateVipUser(daysLeft int, overrides ...func(*models.User)) (*models.User, error) {
	exp := time.Now().AddDate(0, 0, daysLeft)
	base := []func(*models.User){func(u *models.User) {
		u.VipExpirationDate = &exp
	}}
	return f.CreateUser(append(base, overrides...)...)
}

// BuildContentItem constructs a content item without persisting it.
func (f *Factory) BuildContentItem(tier models.ContentTier, overrides ...func(*models.ContentItem)) *models.ContentItem {
	// realistic post date spread over the past year
	daysBack := f.rng.Intn(365)
	hoursBack := f.rng.Intn(24)
	postDate := time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	item := &models.ContentItem{
		Name:     gofakeit.Sentence(4),
		Link:     gofakeit.URL(),
		Category: contentCategories[f.rng.Intn(len(contentCategories))],
		Tier:     tier,
		PostDate: postDate,
	}
	for _, override := range overrides {
		override(item)
	}
	return item
}

// CreateContentItem persists a generated content item.
func (f *Factory) CreateContentItem(tier models.ContentTier, overrides ...func(*models.ContentItem)) (*models.ContentItem, error) {
	item := f.BuildContentItem(tier, overrides...)
	if err := f.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("seed content item: %w", err)
	}
	return item, nil
}

// CreateContentBatch persists multiple content items in a single DB call.
func (f *Factory) CreateContentBatch(items []*models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	return f.db.Create(&items).Error
}

// CreateRecommendation persists a recommendation from the given email.
func (f *Factory) CreateRecommendation(email string, overrides ...func(*models.Recommendation)) (*models.Recommendation, error) {
	rec := &models.Recommendation{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Email:       email,
		Status:      models.RecommendationStatusPending,
	}
	for _, override := range overrides {
		override(rec)
	}
	if err := f.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("seed recommendation: %w", err)
	}
	return rec, nil
}
