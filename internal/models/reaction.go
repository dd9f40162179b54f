package models

import "time"

// Reaction is an aggregate emoji counter on a content item. Counts are not
// tied to individual users; reacting twice counts twice.
type Reaction struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	ContentItemID uint      `gorm:"not null;uniqueIndex:idx_reaction_item_name" json:"linkId"`
	Name          string    `gorm:"size:40;not null;uniqueIndex:idx_reaction_item_name" json:"name"`
	Count         uint      `gorm:"not null;default:0" json:"count"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
