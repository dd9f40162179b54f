package models

import "time"

// RecommendationStatus defines lifecycle states for user content recommendations.
type RecommendationStatus string

const (
	// RecommendationStatusPending indicates the recommendation is awaiting review.
	RecommendationStatusPending RecommendationStatus = "pending"
	// RecommendationStatusApproved indicates the recommendation was accepted.
	RecommendationStatusApproved RecommendationStatus = "approved"
	// RecommendationStatusRejected indicates the recommendation was denied.
	RecommendationStatusRejected RecommendationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s RecommendationStatus) Valid() bool {
	switch s {
	case RecommendationStatusPending, RecommendationStatusApproved, RecommendationStatusRejected:
		return true
	}
	return false
}

// Recommendation is a user-submitted suggestion for content to be added,
// reviewed by an admin. The only valid transitions are pending->approved and
// pending->rejected; both are irreversible.
type Recommendation struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	Title            string               `gorm:"size:300;not null" json:"title"`
	Description      string               `gorm:"type:text" json:"description"`
	Email            string               `gorm:"size:254;not null;index" json:"email"`
	Status           RecommendationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedByUserID *uint                `json:"reviewedByUserId,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}
