package service

import (
	"time"

	"gorm.io/gorm"
)

// HotDeals selects flagged products whose promotion has no expiry or has not
// expired yet at now. Build it per query: the window moves with the clock.
func HotDeals(now time.Time) func(*gorm.DB) *gorm.DB {
	now = now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hot_deal = ?", true).
			Where("(hot_deal_expires_at IS NULL OR hot_deal_expires_at > ?)", now)
	}
}
