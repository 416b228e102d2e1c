package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

// RedirectService resolves where a click should land and records it first.
// A click that cannot be stored aborts the redirect with a *StorageError.
type RedirectService interface {
	ByVendor(ctx context.Context, vendor, userID string, meta RequestMeta) (string, error)
	ByProduct(ctx context.Context, productID, userID string, meta RequestMeta) (string, error)
}

type redirectService struct {
	db     *gorm.DB
	links  VendorLinkService
	clicks ClickRecorder
}

func NewRedirectService(db *gorm.DB, links VendorLinkService, clicks ClickRecorder) RedirectService {
	return &redirectService{db: db, links: links, clicks: clicks}
}

func (s *redirectService) ByVendor(ctx context.Context, vendor, userID string, meta RequestMeta) (string, error) {
	link, err := s.links.Resolve(ctx, vendor)
	if errors.Is(err, ErrLinkNotConfigured) {
		return "", ErrLinkNotAvailable
	}
	if err != nil {
		return "", err
	}

	if _, err := s.clicks.Record(ctx, ClickEvent{
		Target: model.TargetVendorLogo,
		Vendor: vendor,
		UserID: userID,
		Meta:   meta,
	}); err != nil {
		return "", err
	}
	return link, nil
}

func (s *redirectService) ByProduct(ctx context.Context, productID, userID string, meta RequestMeta) (string, error) {
	id, err := parseID(productID)
	if err != nil {
		return "", err
	}

	var p model.Product
	err = s.db.WithContext(ctx).Select("id", "affiliate_id", "affiliate_link").Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrProductNotFound
	}
	if err != nil {
		return "", storageErr("load product", err)
	}

	// The counter is bumped in SQL so concurrent redirects never lose a click.
	err = s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"clicks":     gorm.Expr("clicks + ?", 1),
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return "", storageErr("increment product clicks", err)
	}

	if _, err := s.clicks.Record(ctx, ClickEvent{
		Target:      model.TargetProduct,
		ProductID:   p.ID,
		AffiliateID: p.AffiliateID,
		UserID:      userID,
		Meta:        meta,
	}); err != nil {
		return "", err
	}
	return p.AffiliateLink, nil
}
