package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

// SweepExpired turns ads back on for users whose every subscription has
// lapsed at now. Users who never subscribed are left alone, so an ad_free
// flag granted by an admin survives.
func SweepExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	now = now.UTC()
	subscribed := db.Model(&model.Subscription{}).Select("user_id")
	active := db.Model(&model.Subscription{}).Select("user_id").Where("expires_at > ?", now)

	res := db.WithContext(ctx).Model(&model.User{}).
		Where("ad_free = ?", true).
		Where("id IN (?)", subscribed).
		Where("id NOT IN (?)", active).
		Updates(map[string]any{"ad_free": false, "updated_at": now})
	if res.Error != nil {
		return 0, storageErr("sweep expired subscriptions", res.Error)
	}
	return res.RowsAffected, nil
}

// StartExpiryCron runs SweepExpired on schedule (robfig cron syntax, e.g.
// "@hourly"). Stop the returned cron on shutdown.
func StartExpiryCron(db *gorm.DB, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := SweepExpired(context.Background(), db, time.Now())
		if err != nil {
			log.Printf("expiry sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("expiry sweep: %d users back on ads", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
