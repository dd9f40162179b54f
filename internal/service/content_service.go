// Package service contains the business logic sitting between HTTP handlers
// and repositories.
package service

import (
	"context"
	"time"

	"vipgate/internal/contentview"
	"vipgate/internal/models"
	"vipgate/internal/observability"
	"vipgate/internal/repository"
	"vipgate/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// ContentService handles content item management and list rendering.
type ContentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService returns a new ContentService.
func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// CreateContentRequest carries the fields for creating or updating a content item.
type CreateContentRequest struct {
	Name     string     `json:"name"`
	Link     string     `json:"link"`
	Category string     `json:"category"`
	PostDate *time.Time `json:"postDate"`
}

func (s *ContentService) List(ctx context.Context, tier models.ContentTier) ([]models.ContentItem, error) {
	return s.contentRepo.ListByTier(ctx, tier)
}

// BuildView fetches the tier's items and runs them through the list pipeline:
// filters, sort, recency marking and date grouping.
func (s *ContentService) BuildView(ctx context.Context, tier models.ContentTier, params contentview.Params) (*contentview.View, error) {
	span, ctx := observability.NewSpan(ctx, "contentview.build")
	span.AddAttributes(attribute.String("content.tier", string(tier)))
	defer span.End()

	start := time.Now()
	items, err := s.contentRepo.ListByTier(ctx, tier)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	view := contentview.Build(items, params)
	observability.ObserveViewBuild(string(tier), start)
	return &view, nil
}

func (s *ContentService) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.contentRepo.GetByID(ctx, id)
}

func (s *ContentService) Create(ctx context.Context, tier models.ContentTier, req CreateContentRequest) (*models.ContentItem, error) {
	if err := validation.ValidateContentFields(req.Name, req.Link, req.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	item := &models.ContentItem{
		Name:     req.Name,
		Link:     req.Link,
		Category: req.Category,
		Tier:     tier,
	}
	if req.PostDate != nil {
		item.PostDate = *req.PostDate
	} else {
		item.PostDate = time.Now()
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ContentService) Update(ctx context.Context, id uint, req CreateContentRequest) (*models.ContentItem, error) {
	if err := validation.ValidateContentFields(req.Name, req.Link, req.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Link = req.Link
	item.Category = req.Category
	if req.PostDate != nil {
		item.PostDate = *req.PostDate
	}
	if err := s.contentRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ContentService) Delete(ctx context.Context, id uint) error {
	return s.contentRepo.Delete(ctx, id)
}

func (s *ContentService) Categories(ctx context.Context, tier models.ContentTier) ([]string, error) {
	return s.contentRepo.Categories(ctx, tier)
}
