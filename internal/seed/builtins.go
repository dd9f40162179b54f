package seed

import (
	"log"
	"time"

	"vipgate/internal/models"

	"gorm.io/gorm"
)

// builtinContent is the starter free-tier catalog created on first boot so a
// fresh install never shows the empty state.
var builtinContent = []models.ContentItem{
	{Name: "Welcome Tour", Link: "https://vipgate.app/welcome", Category: "Tutorials", Tier: models.TierFree},
	{Name: "Getting Started Guide", Link: "https://vipgate.app/getting-started", Category: "Tutorials", Tier: models.TierFree},
	{Name: "Community Highlights", Link: "https://vipgate.app/highlights", Category: "News", Tier: models.TierFree},
}

// BuiltIns inserts the starter content if it is not already present.
// Idempotent by name, safe to run on every boot.
func BuiltIns(db *gorm.DB) error {
	now := time.Now()
	created := 0
	for _, item := range builtinContent {
		var count int64
		if err := db.Model(&models.ContentItem{}).
			Where("name = ? AND tier = ?", item.Name, item.Tier).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		item.PostDate = now
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		log.Printf("seeded %d built-in content items", created)
	}
	return nil
}
