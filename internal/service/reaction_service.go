package service

import (
	"context"

	"vipgate/internal/models"
	"vipgate/internal/observability"
	"vipgate/internal/repository"
)

// allowedEmojis is the fixed palette users can react with. Anything else is
// rejected so the aggregate table stays bounded.
var allowedEmojis = map[string]bool{
	"fire":     true,
	"heart":    true,
	"laugh":    true,
	"wow":      true,
	"sad":      true,
	"thumbsup": true,
}

// ReactionService handles emoji reactions on content items.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	contentRepo  repository.ContentRepository
}

// NewReactionService returns a new ReactionService.
func NewReactionService(reactionRepo repository.ReactionRepository, contentRepo repository.ContentRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, contentRepo: contentRepo}
}

// ListForItem returns the reaction counts for a content item, busiest first.
func (s *ReactionService) ListForItem(ctx context.Context, contentItemID uint) ([]models.Reaction, error) {
	if _, err := s.contentRepo.GetByID(ctx, contentItemID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByContentItem(ctx, contentItemID)
}

// React increments the named emoji's counter for a content item.
func (s *ReactionService) React(ctx context.Context, contentItemID uint, name string) (*models.Reaction, error) {
	if !allowedEmojis[name] {
		return nil, models.NewValidationError("Unknown emoji: " + name)
	}
	if _, err := s.contentRepo.GetByID(ctx, contentItemID); err != nil {
		return nil, err
	}
	reaction, err := s.reactionRepo.Increment(ctx, contentItemID, name)
	if err != nil {
		return nil, err
	}
	observability.ReactionEvents.WithLabelValues(name).Inc()
	return reaction, nil
}
