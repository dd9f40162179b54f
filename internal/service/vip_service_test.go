package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vipgate/internal/models"
	"vipgate/internal/vip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateFn               func(context.Context, *models.User) error
	listVipUsersFn         func(context.Context) ([]models.User, error)
	listVipDisabledUsersFn func(context.Context) ([]models.User, error)
	countUsersFn           func(context.Context) (int64, error)
	countActiveVipsFn      func(context.Context, time.Time) (int64, error)
	countUsersSinceFn      func(context.Context, time.Time) (int64, error)
	addFavoriteFn          func(context.Context, uint, uint) error
	removeFavoriteFn       func(context.Context, uint, uint) error
	listFavoritesFn        func(context.Context, uint) ([]models.ContentItem, error)
	createPasswordResetFn  func(context.Context, *models.PasswordReset) error
	getPasswordResetFn     func(context.Context, string) (*models.PasswordReset, error)
	markResetUsedFn        func(context.Context, *models.PasswordReset) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) ListVipUsers(ctx context.Context) ([]models.User, error) {
	return s.listVipUsersFn(ctx)
}
func (s *userRepoStub) ListVipDisabledUsers(ctx context.Context) ([]models.User, error) {
	return s.listVipDisabledUsersFn(ctx)
}
func (s *userRepoStub) CountUsers(ctx context.Context) (int64, error) {
	return s.countUsersFn(ctx)
}
func (s *userRepoStub) CountActiveVips(ctx context.Context, now time.Time) (int64, error) {
	return s.countActiveVipsFn(ctx, now)
}
func (s *userRepoStub) CountUsersSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countUsersSinceFn(ctx, since)
}
func (s *userRepoStub) AddFavorite(ctx context.Context, userID, itemID uint) error {
	return s.addFavoriteFn(ctx, userID, itemID)
}
func (s *userRepoStub) RemoveFavorite(ctx context.Context, userID, itemID uint) error {
	return s.removeFavoriteFn(ctx, userID, itemID)
}
func (s *userRepoStub) ListFavorites(ctx context.Context, userID uint) ([]models.ContentItem, error) {
	return s.listFavoritesFn(ctx, userID)
}
func (s *userRepoStub) CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error {
	return s.createPasswordResetFn(ctx, reset)
}
func (s *userRepoStub) GetPasswordReset(ctx context.Context, token string) (*models.PasswordReset, error) {
	return s.getPasswordResetFn(ctx, token)
}
func (s *userRepoStub) MarkPasswordResetUsed(ctx context.Context, reset *models.PasswordReset) error {
	return s.markResetUsedFn(ctx, reset)
}

// singleUserRepo serves one in-memory user and records the last Update.
func singleUserRepo(user *models.User) *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			if user != nil && user.ID == id {
				return user, nil
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if user != nil && user.Email == email {
				return user, nil
			}
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestVipService(user *models.User) (*VipService, *userRepoStub) {
	repo := singleUserRepo(user)
	svc := NewVipService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func TestRenewMonthExtendsFromFutureExpiration(t *testing.T) {
	exp := testNow.AddDate(0, 0, 10)
	user := &models.User{ID: 1, Email: "vip@example.com", VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	updated, err := svc.RenewMonth(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.Equal(t, exp.AddDate(0, 0, 30), *updated.VipExpirationDate)
}

func TestRenewMonthRestartsFromNowWhenLapsed(t *testing.T) {
	exp := testNow.AddDate(0, 0, -5)
	user := &models.User{ID: 1, Email: "vip@example.com", VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	updated, err := svc.RenewMonth(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, 30), *updated.VipExpirationDate)
}

func TestRenewMonthGrantsFreshVip(t *testing.T) {
	user := &models.User{ID: 1, Email: "new@example.com"}
	svc, _ := newTestVipService(user)

	updated, err := svc.RenewMonth(context.Background(), "new@example.com")

	require.NoError(t, err)
	require.NotNil(t, updated.VipExpirationDate)
	assert.Equal(t, testNow.AddDate(0, 0, 30), *updated.VipExpirationDate)
}

func TestRenewYearExtendsOneCalendarYear(t *testing.T) {
	exp := testNow.AddDate(0, 0, 20)
	user := &models.User{ID: 1, Email: "vip@example.com", VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	updated, err := svc.RenewYear(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.Equal(t, exp.AddDate(1, 0, 0), *updated.VipExpirationDate)
}

func TestRenewReactivatesDisabledAndCanceling(t *testing.T) {
	exp := testNow.AddDate(0, 0, -1)
	user := &models.User{
		ID: 1, Email: "vip@example.com",
		VipExpirationDate: &exp,
		VipDisabled:       true,
		CancelAtPeriodEnd: true,
	}
	svc, _ := newTestVipService(user)

	updated, err := svc.RenewMonth(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.False(t, updated.VipDisabled)
	assert.False(t, updated.CancelAtPeriodEnd)
	assert.Equal(t, vip.StateActive, svc.StateOf(updated))
}

func TestRenewUnknownUserIsNotFound(t *testing.T) {
	svc, _ := newTestVipService(nil)

	_, err := svc.RenewMonth(context.Background(), "ghost@example.com")

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDisableKeepsExpirationDate(t *testing.T) {
	exp := testNow.AddDate(0, 0, 15)
	user := &models.User{ID: 1, Email: "vip@example.com", VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	updated, err := svc.Disable(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.True(t, updated.VipDisabled)
	require.NotNil(t, updated.VipExpirationDate)
	assert.Equal(t, exp, *updated.VipExpirationDate)
	assert.Equal(t, vip.StateDisabled, svc.StateOf(updated))
}

func TestRemoveVipClearsGrant(t *testing.T) {
	exp := testNow.AddDate(0, 0, 15)
	user := &models.User{
		ID: 1, Email: "vip@example.com",
		VipExpirationDate: &exp,
		VipDisabled:       true,
		CancelAtPeriodEnd: true,
	}
	svc, _ := newTestVipService(user)

	updated, err := svc.RemoveVip(context.Background(), "vip@example.com")

	require.NoError(t, err)
	assert.Nil(t, updated.VipExpirationDate)
	assert.False(t, updated.VipDisabled)
	assert.False(t, updated.CancelAtPeriodEnd)
	assert.Equal(t, vip.StateExpired, svc.StateOf(updated))
}

func TestCancelAtPeriodEndKeepsExpiration(t *testing.T) {
	exp := testNow.AddDate(0, 0, 9)
	user := &models.User{ID: 7, Email: "vip@example.com", VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	updated, err := svc.CancelAtPeriodEnd(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, updated.CancelAtPeriodEnd)
	assert.Equal(t, exp, *updated.VipExpirationDate)
	assert.Equal(t, vip.StateCanceling, svc.StateOf(updated))
	// Days remaining are unaffected by cancellation.
	assert.Equal(t, 9, svc.DaysLeft(updated))
}

func TestCancelWithoutSubscriptionFails(t *testing.T) {
	user := &models.User{ID: 7, Email: "free@example.com"}
	svc, _ := newTestVipService(user)

	_, err := svc.CancelAtPeriodEnd(context.Background(), 7)

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDaysLeftCeilsPartialDays(t *testing.T) {
	exp := testNow.Add(60 * time.Hour) // 2.5 days
	user := &models.User{ID: 1, VipExpirationDate: &exp}
	svc, _ := newTestVipService(user)

	assert.Equal(t, 3, svc.DaysLeft(user))
}
