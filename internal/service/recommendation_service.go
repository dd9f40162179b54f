package service

import (
	"context"
	"strings"

	"vipgate/internal/models"
	"vipgate/internal/repository"
	"vipgate/internal/validation"
)

// RecommendationService handles the content recommendation queue: user
// submissions and the admin review flow.
type RecommendationService struct {
	recRepo repository.RecommendationRepository
}

// NewRecommendationService returns a new RecommendationService.
func NewRecommendationService(recRepo repository.RecommendationRepository) *RecommendationService {
	return &RecommendationService{recRepo: recRepo}
}

// CreateRecommendationRequest carries a user's content suggestion.
type CreateRecommendationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *RecommendationService) Create(ctx context.Context, email string, req CreateRecommendationRequest) (*models.Recommendation, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > 200 {
		return nil, models.NewValidationError("Title must be at most 200 characters")
	}
	if len(req.Description) > 2000 {
		return nil, models.NewValidationError("Description must be at most 2000 characters")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	rec := &models.Recommendation{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Email:       email,
		Status:      models.RecommendationStatusPending,
	}
	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecommendationService) List(ctx context.Context, status models.RecommendationStatus, limit, offset int) ([]models.Recommendation, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, models.NewValidationError("Invalid status filter")
	}
	return s.recRepo.List(ctx, status, limit, offset)
}

func (s *RecommendationService) ListByEmail(ctx context.Context, email string) ([]models.Recommendation, error) {
	return s.recRepo.ListByEmail(ctx, email)
}

// Approve moves a pending recommendation to approved. Reviewing an already
// reviewed submission is a conflict, not a repeat success.
func (s *RecommendationService) Approve(ctx context.Context, id, reviewerID uint) (*models.Recommendation, error) {
	return s.review(ctx, id, reviewerID, models.RecommendationStatusApproved)
}

// Reject moves a pending recommendation to rejected.
func (s *RecommendationService) Reject(ctx context.Context, id, reviewerID uint) (*models.Recommendation, error) {
	return s.review(ctx, id, reviewerID, models.RecommendationStatusRejected)
}

func (s *RecommendationService) review(ctx context.Context, id, reviewerID uint, status models.RecommendationStatus) (*models.Recommendation, error) {
	moved, err := s.recRepo.SetStatusIfPending(ctx, id, status, reviewerID)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Either the row does not exist or it was already reviewed.
		rec, err := s.recRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, models.NewConflictError("Recommendation has already been reviewed as " + string(rec.Status))
	}
	return s.recRepo.GetByID(ctx, id)
}
