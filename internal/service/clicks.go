package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

// RequestMeta is what the redirect handlers copy off the incoming request.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// ClickEvent is a single attribution action. Empty strings mean "absent".
type ClickEvent struct {
	Target      model.ClickTarget
	ProductID   string
	AffiliateID string
	Vendor      string
	UserID      string
	Meta        RequestMeta
}

type ClickQuery struct {
	Target      model.ClickTarget
	ProductID   string
	AffiliateID string
	Vendor      string
	UserID      string
	Limit       int
}

type ClickRecorder interface {
	Record(ctx context.Context, ev ClickEvent) (string, error)
	List(ctx context.Context, q ClickQuery) ([]model.Click, error)
	Count(ctx context.Context, q ClickQuery) (int64, error)
}

type clickRecorder struct{ db *gorm.DB }

func NewClickRecorder(db *gorm.DB) ClickRecorder { return &clickRecorder{db: db} }

func (r *clickRecorder) Record(ctx context.Context, ev ClickEvent) (string, error) {
	if !ev.Target.Valid() {
		return "", invalid("unknown click target %q", ev.Target)
	}
	c := model.Click{
		Target:      ev.Target,
		ProductID:   optional(ev.ProductID),
		AffiliateID: optional(ev.AffiliateID),
		Vendor:      optional(ev.Vendor),
		UserID:      optional(ev.UserID),
		IP:          optional(ev.Meta.IP),
		UserAgent:   optional(ev.Meta.UserAgent),
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return "", storageErr("record click", err)
	}
	return c.ID, nil
}

func (r *clickRecorder) scope(q ClickQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Target != "" {
			db = db.Where("target = ?", q.Target)
		}
		if q.ProductID != "" {
			db = db.Where("product_id = ?", q.ProductID)
		}
		if q.AffiliateID != "" {
			db = db.Where("affiliate_id = ?", q.AffiliateID)
		}
		if q.Vendor != "" {
			db = db.Where("vendor = ?", q.Vendor)
		}
		if q.UserID != "" {
			db = db.Where("user_id = ?", q.UserID)
		}
		return db
	}
}

func (r *clickRecorder) List(ctx context.Context, q ClickQuery) ([]model.Click, error) {
	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var clicks []model.Click
	err := r.db.WithContext(ctx).Scopes(r.scope(q)).
		Order("created_at desc").Limit(limit).Find(&clicks).Error
	return clicks, storageErr("list clicks", err)
}

func (r *clickRecorder) Count(ctx context.Context, q ClickQuery) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Click{}).Scopes(r.scope(q)).Count(&n).Error
	return n, storageErr("count clicks", err)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
