package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vipgate/internal/contentview"
	"vipgate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	listByTierFn func(context.Context, models.ContentTier) ([]models.ContentItem, error)
	getByIDFn    func(context.Context, uint) (*models.ContentItem, error)
	createFn     func(context.Context, *models.ContentItem) error
	updateFn     func(context.Context, *models.ContentItem) error
	deleteFn     func(context.Context, uint) error
	categoriesFn func(context.Context, models.ContentTier) ([]string, error)
}

func (s *contentRepoStub) ListByTier(ctx context.Context, tier models.ContentTier) ([]models.ContentItem, error) {
	return s.listByTierFn(ctx, tier)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) Create(ctx context.Context, item *models.ContentItem) error {
	return s.createFn(ctx, item)
}
func (s *contentRepoStub) Update(ctx context.Context, item *models.ContentItem) error {
	return s.updateFn(ctx, item)
}
func (s *contentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *contentRepoStub) Categories(ctx context.Context, tier models.ContentTier) ([]string, error) {
	return s.categoriesFn(ctx, tier)
}

func TestBuildViewRunsPipelineOverTierItems(t *testing.T) {
	d1 := time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local)
	d2 := time.Date(2024, 2, 8, 10, 0, 0, 0, time.Local)
	repo := &contentRepoStub{
		listByTierFn: func(_ context.Context, tier models.ContentTier) ([]models.ContentItem, error) {
			assert.Equal(t, models.TierVip, tier)
			return []models.ContentItem{
				{Name: "Older", PostDate: d1},
				{Name: "Newer", PostDate: d2},
			}, nil
		},
	}
	svc := NewContentService(repo)

	view, err := svc.BuildView(context.Background(), models.TierVip, contentview.Params{})

	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "02/08/2024", view.Groups[0].Date)
	assert.Equal(t, "Newer", view.Groups[0].Items[0].Name)
}

func TestCreateValidatesFields(t *testing.T) {
	svc := NewContentService(&contentRepoStub{})

	tests := []struct {
		name string
		req  CreateContentRequest
	}{
		{"empty name", CreateContentRequest{Link: "https://a.example", Category: "X"}},
		{"relative link", CreateContentRequest{Name: "a", Link: "/nope", Category: "X"}},
		{"bad scheme", CreateContentRequest{Name: "a", Link: "ftp://a.example", Category: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), models.TierFree, tt.req)
			require.Error(t, err)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestCreateDefaultsPostDateToNow(t *testing.T) {
	var created *models.ContentItem
	repo := &contentRepoStub{
		createFn: func(_ context.Context, item *models.ContentItem) error {
			created = item
			return nil
		},
	}
	svc := NewContentService(repo)

	before := time.Now()
	item, err := svc.Create(context.Background(), models.TierFree, CreateContentRequest{
		Name:     "Launch Recap",
		Link:     "https://example.com/recap",
		Category: "News",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, item.PostDate.Before(before))
	assert.Equal(t, models.TierFree, item.Tier)
}

func TestUpdateKeepsPostDateWhenOmitted(t *testing.T) {
	existing := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	repo := &contentRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.ContentItem, error) {
			return &models.ContentItem{ID: id, Name: "Old", Link: "https://a.example", Category: "X", PostDate: existing}, nil
		},
		updateFn: func(_ context.Context, _ *models.ContentItem) error { return nil },
	}
	svc := NewContentService(repo)

	item, err := svc.Update(context.Background(), 3, CreateContentRequest{
		Name:     "New name",
		Link:     "https://a.example/new",
		Category: "Y",
	})

	require.NoError(t, err)
	assert.Equal(t, "New name", item.Name)
	assert.Equal(t, existing, item.PostDate)
}
