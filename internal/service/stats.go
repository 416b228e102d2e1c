package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type Stats struct {
	TotalBuyers     int64   `json:"total_buyers"`
	TotalAffiliates int64   `json:"total_affiliates"`
	Subscribers     int64   `json:"subscribers"`
	AppEarnings     float64 `json:"app_earnings"`
	TotalClicks     int64   `json:"total_clicks"`
}

type StatsService interface {
	Stats(ctx context.Context, now time.Time) (Stats, error)
}

type statsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) StatsService { return &statsService{db: db} }

func (s *statsService) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Where("role = ?", model.RoleBuyer).Count(&st.TotalBuyers).Error; err != nil {
		return st, storageErr("count buyers", err)
	}
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAffiliate).Count(&st.TotalAffiliates).Error; err != nil {
		return st, storageErr("count affiliates", err)
	}
	if err := db.Model(&model.Subscription{}).Where("expires_at > ?", now.UTC()).Count(&st.Subscribers).Error; err != nil {
		return st, storageErr("count subscribers", err)
	}
	if err := db.Model(&model.Subscription{}).Select("COALESCE(SUM(amount), 0)").Scan(&st.AppEarnings).Error; err != nil {
		return st, storageErr("sum earnings", err)
	}
	if err := db.Model(&model.Click{}).Count(&st.TotalClicks).Error; err != nil {
		return st, storageErr("count clicks", err)
	}
	return st, nil
}
