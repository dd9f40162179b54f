package service

import (
	"context"
	"time"

	"vipgate/internal/models"
	"vipgate/internal/observability"
	"vipgate/internal/repository"
	"vipgate/internal/vip"
)

// VipService owns every VIP state transition. Expiration arithmetic lives
// here and nowhere else; clients only ever read the resulting dates.
type VipService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewVipService returns a new VipService.
func NewVipService(userRepo repository.UserRepository) *VipService {
	return &VipService{userRepo: userRepo, now: time.Now}
}

// RenewMonth extends the user's VIP by 30 days. An active grant extends from
// its current expiration; a lapsed or missing grant restarts from now.
func (s *VipService) RenewMonth(ctx context.Context, email string) (*models.User, error) {
	return s.renew(ctx, email, "renew_month", func(base time.Time) time.Time {
		return base.AddDate(0, 0, 30)
	})
}

// RenewYear extends the user's VIP by one calendar year.
func (s *VipService) RenewYear(ctx context.Context, email string) (*models.User, error) {
	return s.renew(ctx, email, "renew_year", func(base time.Time) time.Time {
		return base.AddDate(1, 0, 0)
	})
}

func (s *VipService) renew(ctx context.Context, email, action string, extend func(time.Time) time.Time) (*models.User, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		observability.RecordVipTransition(action, err)
		return nil, err
	}

	now := s.now()
	base := now
	if user.VipExpirationDate != nil && user.VipExpirationDate.After(now) {
		base = *user.VipExpirationDate
	}
	exp := extend(base)
	user.VipExpirationDate = &exp
	// Renewal reactivates: a disabled or canceling account paying again is
	// back in good standing.
	user.VipDisabled = false
	user.CancelAtPeriodEnd = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.RecordVipTransition(action, err)
		return nil, err
	}
	observability.RecordVipTransition(action, nil)
	return user, nil
}

// Disable blocks the user's VIP access without touching the expiration date,
// so re-enabling restores whatever time was left.
func (s *VipService) Disable(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		observability.RecordVipTransition("disable", err)
		return nil, err
	}
	user.VipDisabled = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.RecordVipTransition("disable", err)
		return nil, err
	}
	observability.RecordVipTransition("disable", nil)
	return user, nil
}

// RemoveVip strips the grant entirely. The user drops back to the free tier
// immediately.
func (s *VipService) RemoveVip(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		observability.RecordVipTransition("remove", err)
		return nil, err
	}
	user.VipExpirationDate = nil
	user.VipDisabled = false
	user.CancelAtPeriodEnd = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.RecordVipTransition("remove", err)
		return nil, err
	}
	observability.RecordVipTransition("remove", nil)
	return user, nil
}

// CancelAtPeriodEnd flags the subscription to lapse at its current
// expiration. Access continues untouched until that date passes.
func (s *VipService) CancelAtPeriodEnd(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		observability.RecordVipTransition("cancel", err)
		return nil, err
	}
	if user.VipExpirationDate == nil {
		err := models.NewValidationError("User has no active subscription")
		observability.RecordVipTransition("cancel", err)
		return nil, err
	}
	user.CancelAtPeriodEnd = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.RecordVipTransition("cancel", err)
		return nil, err
	}
	observability.RecordVipTransition("cancel", nil)
	return user, nil
}

// DaysLeft reports the whole days remaining on the user's grant, zero when
// expired or absent.
func (s *VipService) DaysLeft(user *models.User) int {
	return vip.DaysLeft(user.VipExpirationDate, s.now())
}

// StateOf reports the lifecycle state of the user's grant.
func (s *VipService) StateOf(user *models.User) vip.State {
	return vip.StateOf(*user, s.now())
}

// ListVipUsers returns grant holders for the admin panel, expired first.
func (s *VipService) ListVipUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListVipUsers(ctx)
}

// ListVipDisabledUsers returns users whose VIP access is administratively blocked.
func (s *VipService) ListVipDisabledUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListVipDisabledUsers(ctx)
}

func (s *VipService) userByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return user, nil
}
