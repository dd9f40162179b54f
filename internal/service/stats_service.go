package service

import (
	"context"
	"math"
	"time"

	"vipgate/internal/cache"
	"vipgate/internal/repository"
)

// Stats is the aggregate snapshot served to the admin dashboard.
type Stats struct {
	TotalUsers                  int64   `json:"totalUsers"`
	TotalVIPs                   int64   `json:"totalVIPs"`
	TotalContentRecommendations int64   `json:"totalContentRecommendations"`
	UsersLastMonth              int64   `json:"usersLastMonth"`
	VipPercentage               float64 `json:"vipPercentage"`
}

// StatsService computes platform-wide counts.
type StatsService struct {
	userRepo repository.UserRepository
	recRepo  repository.RecommendationRepository
	now      func() time.Time
}

// NewStatsService returns a new StatsService.
func NewStatsService(userRepo repository.UserRepository, recRepo repository.RecommendationRepository) *StatsService {
	return &StatsService{userRepo: userRepo, recRepo: recRepo, now: time.Now}
}

// Snapshot returns current counts, cached briefly since the dashboard polls.
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		now := s.now()

		totalUsers, err := s.userRepo.CountUsers(ctx)
		if err != nil {
			return err
		}
		totalVips, err := s.userRepo.CountActiveVips(ctx, now)
		if err != nil {
			return err
		}
		totalRecs, err := s.recRepo.CountAll(ctx)
		if err != nil {
			return err
		}
		lastMonth, err := s.userRepo.CountUsersSince(ctx, now.AddDate(0, -1, 0))
		if err != nil {
			return err
		}

		stats = Stats{
			TotalUsers:                  totalUsers,
			TotalVIPs:                   totalVips,
			TotalContentRecommendations: totalRecs,
			UsersLastMonth:              lastMonth,
		}
		if totalUsers > 0 {
			pct := float64(totalVips) / float64(totalUsers) * 100
			stats.VipPercentage = math.Round(pct*100) / 100
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
