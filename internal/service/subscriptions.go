package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

// SubscriptionPeriod is how long one ad-free payment lasts.
const SubscriptionPeriod = 30 * 24 * time.Hour

type SubscriptionService interface {
	Create(ctx context.Context, userID, txID string, amount float64) (*model.Subscription, error)
	List(ctx context.Context, userID string) ([]model.Subscription, error)
}

type subscriptionService struct {
	db    *gorm.DB
	email EmailService
}

func NewSubscriptionService(db *gorm.DB, email EmailService) SubscriptionService {
	return &subscriptionService{db: db, email: email}
}

// Create records the payment and turns ads off for the user. No money moves
// here; tx_id is whatever the payment provider handed the client.
func (s *subscriptionService) Create(ctx context.Context, userID, txID string, amount float64) (*model.Subscription, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if txID == "" {
		return nil, invalid("tx_id is required")
	}
	if amount < 0 {
		return nil, invalid("amount must be >= 0")
	}

	now := time.Now().UTC()
	sub := model.Subscription{
		UserID:    uid,
		TxID:      txID,
		Amount:    amount,
		StartsAt:  now,
		ExpiresAt: now.Add(SubscriptionPeriod),
	}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, storageErr("create subscription", err)
	}

	var u model.User
	res := s.db.WithContext(ctx).Model(&u).Where("id = ?", uid).
		Updates(map[string]any{"ad_free": true, "updated_at": now})
	if res.Error != nil {
		return nil, storageErr("mark user ad-free", res.Error)
	}

	// mail (best-effort)
	if res.RowsAffected > 0 && s.db.WithContext(ctx).Select("email").Where("id = ?", uid).Take(&u).Error == nil {
		body := fmt.Sprintf("Thanks! Your ad-free subscription is active until %s.", sub.ExpiresAt.Format("2 Jan 2006"))
		if err := s.email.Send(u.Email, "Ad-free subscription", body); err != nil {
			log.Printf("subscription %s: mail to %s failed: %v", sub.ID, u.Email, err)
		}
	}
	return &sub, nil
}

func (s *subscriptionService) List(ctx context.Context, userID string) ([]model.Subscription, error) {
	tx := s.db.WithContext(ctx)
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	var subs []model.Subscription
	err := tx.Order("created_at desc").Find(&subs).Error
	return subs, storageErr("list subscriptions", err)
}
