package models

import (
	"encoding/json"
	"time"
)

// User represents an account. VIP status is derived from VipExpirationDate:
// the expiration comparison is the single source of truth, the `is_vip` JSON
// field is computed at serialization time and never stored.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:120;not null" json:"name"`
	Email    string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"isAdmin"`
	// VipExpirationDate is nil for users who never held VIP or whose grant was
	// removed. A nil date always reads as expired.
	VipExpirationDate *time.Time `json:"vipExpirationDate"`
	// VipDisabled marks a manually disabled grant, distinct from natural expiry.
	VipDisabled bool `gorm:"not null;default:false;index" json:"vipDisabled"`
	// CancelAtPeriodEnd means billing stops at expiration but access continues
	// until then.
	CancelAtPeriodEnd bool       `gorm:"not null;default:false" json:"cancelAtPeriodEnd"`
	Favorites         []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// MarshalJSON adds the derived is_vip field so API consumers never see the
// flag and the expiration date disagree.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		alias
		IsVip bool `json:"isVip"`
	}{
		alias: alias(u),
		IsVip: u.VipActive(time.Now()),
	})
}

// VipActive reports whether the user's VIP grant is usable at the given time:
// not disabled and not expired. A nil expiration date counts as expired.
func (u User) VipActive(now time.Time) bool {
	if u.VipDisabled {
		return false
	}
	return u.VipExpirationDate != nil && u.VipExpirationDate.After(now)
}

// Favorite links a user to a saved content item.
type Favorite struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;uniqueIndex:idx_fav_user_item" json:"userId"`
	ContentItemID uint         `gorm:"not null;uniqueIndex:idx_fav_user_item" json:"contentItemId"`
	ContentItem   *ContentItem `gorm:"foreignKey:ContentItemID" json:"contentItem,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// PasswordReset is a single-use token mailed to a user who forgot their
// password.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"-"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `json:"-"`
}
