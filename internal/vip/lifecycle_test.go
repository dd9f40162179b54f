package vip

import (
	"testing"
	"time"

	"vipgate/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name       string
		expiration *time.Time
		want       bool
	}{
		{"nil date is expired", nil, true},
		{"past date is expired", ptr(now.Add(-time.Minute)), true},
		{"future date is not expired", ptr(now.Add(time.Minute)), false},
		{"far future is not expired", ptr(now.AddDate(1, 0, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpired(tt.expiration, now))
		})
	}
}

func TestIsExpiredString(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty string", "", true},
		{"sentinel", NotDefinedSentinel, true},
		{"garbage", "not-a-date", true},
		{"past RFC3339", now.Add(-time.Hour).Format(time.RFC3339), true},
		{"future RFC3339", now.Add(time.Hour).Format(time.RFC3339), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpiredString(tt.value, now))
		})
	}
}

func TestDaysLeftRoundsUp(t *testing.T) {
	tests := []struct {
		name       string
		expiration *time.Time
		want       int
	}{
		{"nil", nil, 0},
		{"already expired", ptr(now.Add(-time.Hour)), 0},
		{"exactly now", ptr(now), 0},
		{"half a day", ptr(now.Add(12 * time.Hour)), 1},
		{"two and a half days", ptr(now.Add(60 * time.Hour)), 3},
		{"exactly three days", ptr(now.Add(72 * time.Hour)), 3},
		{"just over three days", ptr(now.Add(72*time.Hour + time.Second)), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLeft(tt.expiration, now))
		})
	}
}

func TestStateOf(t *testing.T) {
	future := ptr(now.AddDate(0, 0, 10))
	past := ptr(now.AddDate(0, 0, -10))

	tests := []struct {
		name string
		user models.User
		want State
	}{
		{"no grant", models.User{}, StateExpired},
		{"active grant", models.User{VipExpirationDate: future}, StateActive},
		{"lapsed grant", models.User{VipExpirationDate: past}, StateExpired},
		{"disabled wins over active", models.User{VipExpirationDate: future, VipDisabled: true}, StateDisabled},
		{"disabled wins over expired", models.User{VipExpirationDate: past, VipDisabled: true}, StateDisabled},
		{"canceling with time left", models.User{VipExpirationDate: future, CancelAtPeriodEnd: true}, StateCanceling},
		{"canceling past expiration reads expired", models.User{VipExpirationDate: past, CancelAtPeriodEnd: true}, StateExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.user, now))
		})
	}
}
