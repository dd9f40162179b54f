// Package vip holds the subscription lifecycle predicates and state
// derivation. Everything here is pure; the write transitions live in
// service.VipService so that renewal arithmetic has exactly one home.
package vip

import (
	"math"
	"time"

	"vipgate/internal/models"
)

// NotDefinedSentinel is the literal some legacy clients send in place of a
// missing expiration date. It reads as expired.
const NotDefinedSentinel = "Not defined"

// State is the observable lifecycle state of a user's VIP grant.
type State string

const (
	// StateActive means the expiration is in the future and the grant is not
	// disabled.
	StateActive State = "active"
	// StateExpired means the expiration is in the past or absent.
	StateExpired State = "expired"
	// StateDisabled means the grant was manually disabled, regardless of the
	// expiration date.
	StateDisabled State = "disabled"
	// StateCanceling means billing stops at period end but access continues
	// until the expiration elapses.
	StateCanceling State = "canceling"
)

// IsExpired reports whether an expiration date reads as expired at the given
// time. Absence of a date is treated as expired, never as "no limit" — several
// admin views branch on this to decide which actions to offer.
func IsExpired(expiration *time.Time, now time.Time) bool {
	if expiration == nil {
		return true
	}
	return expiration.Before(now)
}

// IsExpiredString applies IsExpired to a raw API value, honoring the
// NotDefinedSentinel and treating unparseable input as expired.
func IsExpiredString(expiration string, now time.Time) bool {
	if expiration == "" || expiration == NotDefinedSentinel {
		return true
	}
	t, err := time.Parse(time.RFC3339, expiration)
	if err != nil {
		return true
	}
	return IsExpired(&t, now)
}

// DaysLeft returns the number of whole-or-partial days until expiration,
// rounded up and floored at zero.
func DaysLeft(expiration *time.Time, now time.Time) int {
	if expiration == nil {
		return 0
	}
	diff := expiration.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// StateOf derives the lifecycle state of a user at the given time. Disabled
// wins over everything; a cancel-at-period-end grant stays Canceling only
// while the expiration is still in the future.
func StateOf(u models.User, now time.Time) State {
	if u.VipDisabled {
		return StateDisabled
	}
	if IsExpired(u.VipExpirationDate, now) {
		return StateExpired
	}
	if u.CancelAtPeriodEnd {
		return StateCanceling
	}
	return StateActive
}
