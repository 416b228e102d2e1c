package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type OrderService interface {
	Create(ctx context.Context, userID, productID string) (*model.Order, error)
	List(ctx context.Context, userID, affiliateID string) ([]model.Order, error)
}

type orderService struct{ db *gorm.DB }

func NewOrderService(db *gorm.DB) OrderService { return &orderService{db: db} }

// Create snapshots the product's link and owner onto a new order, then bumps
// the product's order counter.
func (s *orderService) Create(ctx context.Context, userID, productID string) (*model.Order, error) {
	if userID == "" {
		return nil, invalid("user_id is required")
	}
	pid, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	var p model.Product
	err = s.db.WithContext(ctx).Where("id = ?", pid).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, storageErr("load product", err)
	}

	o := model.Order{
		UserID:      userID,
		ProductID:   p.ID,
		AffiliateID: optional(p.AffiliateID),
		Status:      model.OrderRedirected,
		VendorURL:   optional(p.AffiliateLink),
	}
	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, storageErr("create order", err)
	}
	err = s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).
		UpdateColumn("orders", gorm.Expr("orders + ?", 1)).Error
	if err != nil {
		return nil, storageErr("increment product orders", err)
	}
	return &o, nil
}

func (s *orderService) List(ctx context.Context, userID, affiliateID string) ([]model.Order, error) {
	tx := s.db.WithContext(ctx)
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if affiliateID != "" {
		tx = tx.Where("affiliate_id = ?", affiliateID)
	}
	var orders []model.Order
	err := tx.Order("created_at desc").Find(&orders).Error
	return orders, storageErr("list orders", err)
}
