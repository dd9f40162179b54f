package models

import "time"

// ContentTier separates the two catalogs the site serves.
type ContentTier string

const (
	// TierFree is content visible to unauthenticated or non-paying users.
	TierFree ContentTier = "free"
	// TierVip is content gated behind an active VIP subscription.
	TierVip ContentTier = "vip"
)

// ContentItem is a curated link in one of the two catalogs. Items are hard
// deleted on admin removal; there is intentionally no DeletedAt column.
type ContentItem struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Name     string      `gorm:"size:300;not null" json:"name"`
	Link     string      `gorm:"size:2048;not null" json:"link"`
	Category string      `gorm:"size:80;index" json:"category"`
	Tier     ContentTier `gorm:"type:varchar(10);not null;index" json:"tier"`
	// PostDate is the date the item becomes visible; it drives grouping and
	// recency in the content view, independent of the row's CreatedAt.
	PostDate  time.Time `gorm:"index" json:"postDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Reactions holds aggregate emoji counts; populated on demand, not preloaded
	// on list endpoints.
	Reactions []Reaction `gorm:"foreignKey:ContentItemID" json:"reactions,omitempty"`
}

// EffectiveDate returns the date used for filtering and grouping: PostDate when
// set, otherwise CreatedAt. Older rows predate the PostDate column.
func (c ContentItem) EffectiveDate() time.Time {
	if !c.PostDate.IsZero() {
		return c.PostDate
	}
	return c.CreatedAt
}
