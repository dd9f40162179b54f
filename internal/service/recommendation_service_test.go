package service

import (
	"context"
	"errors"
	"testing"

	"vipgate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recRepoStub is a stub for repository.RecommendationRepository.
type recRepoStub struct {
	createFn             func(context.Context, *models.Recommendation) error
	getByIDFn            func(context.Context, uint) (*models.Recommendation, error)
	listFn               func(context.Context, models.RecommendationStatus, int, int) ([]models.Recommendation, int64, error)
	listByEmailFn        func(context.Context, string) ([]models.Recommendation, error)
	setStatusIfPendingFn func(context.Context, uint, models.RecommendationStatus, uint) (bool, error)
	countAllFn           func(context.Context) (int64, error)
}

func (s *recRepoStub) Create(ctx context.Context, rec *models.Recommendation) error {
	return s.createFn(ctx, rec)
}
func (s *recRepoStub) GetByID(ctx context.Context, id uint) (*models.Recommendation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *recRepoStub) List(ctx context.Context, status models.RecommendationStatus, limit, offset int) ([]models.Recommendation, int64, error) {
	return s.listFn(ctx, status, limit, offset)
}
func (s *recRepoStub) ListByEmail(ctx context.Context, email string) ([]models.Recommendation, error) {
	return s.listByEmailFn(ctx, email)
}
func (s *recRepoStub) SetStatusIfPending(ctx context.Context, id uint, status models.RecommendationStatus, reviewerID uint) (bool, error) {
	return s.setStatusIfPendingFn(ctx, id, status, reviewerID)
}
func (s *recRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}

func TestCreateRecommendationDefaultsToPending(t *testing.T) {
	var created *models.Recommendation
	repo := &recRepoStub{
		createFn: func(_ context.Context, rec *models.Recommendation) error {
			created = rec
			return nil
		},
	}
	svc := NewRecommendationService(repo)

	rec, err := svc.Create(context.Background(), "user@example.com", CreateRecommendationRequest{
		Title:       "  Weekly live coding  ",
		Description: "Would love a recurring stream.",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.RecommendationStatusPending, rec.Status)
	assert.Equal(t, "Weekly live coding", rec.Title)
	assert.Equal(t, "user@example.com", rec.Email)
}

func TestCreateRecommendationRejectsEmptyTitle(t *testing.T) {
	svc := NewRecommendationService(&recRepoStub{})

	_, err := svc.Create(context.Background(), "user@example.com", CreateRecommendationRequest{
		Title: "   ",
	})

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestApproveMovesPendingToApproved(t *testing.T) {
	var gotStatus models.RecommendationStatus
	var gotReviewer uint
	repo := &recRepoStub{
		setStatusIfPendingFn: func(_ context.Context, id uint, status models.RecommendationStatus, reviewerID uint) (bool, error) {
			gotStatus = status
			gotReviewer = reviewerID
			return true, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Recommendation, error) {
			return &models.Recommendation{ID: id, Status: models.RecommendationStatusApproved}, nil
		},
	}
	svc := NewRecommendationService(repo)

	rec, err := svc.Approve(context.Background(), 42, 9)

	require.NoError(t, err)
	assert.Equal(t, models.RecommendationStatusApproved, gotStatus)
	assert.Equal(t, uint(9), gotReviewer)
	assert.Equal(t, models.RecommendationStatusApproved, rec.Status)
}

func TestReviewAlreadyReviewedIsConflict(t *testing.T) {
	repo := &recRepoStub{
		setStatusIfPendingFn: func(_ context.Context, _ uint, _ models.RecommendationStatus, _ uint) (bool, error) {
			return false, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Recommendation, error) {
			return &models.Recommendation{ID: id, Status: models.RecommendationStatusApproved}, nil
		},
	}
	svc := NewRecommendationService(repo)

	_, err := svc.Reject(context.Background(), 42, 9)

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestReviewMissingRecommendationIsNotFound(t *testing.T) {
	repo := &recRepoStub{
		setStatusIfPendingFn: func(_ context.Context, _ uint, _ models.RecommendationStatus, _ uint) (bool, error) {
			return false, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Recommendation, error) {
			return nil, models.NewNotFoundError("Recommendation", id)
		},
	}
	svc := NewRecommendationService(repo)

	_, err := svc.Approve(context.Background(), 404, 9)

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := NewRecommendationService(&recRepoStub{})

	_, _, err := svc.List(context.Background(), "archived", 20, 0)

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
