package service

import (
	"context"
	"errors"
	"net/url"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

// AdminSettingUpdate carries the vendor links to change. Nil leaves a link
// untouched; an empty string clears it.
type AdminSettingUpdate struct {
	Amazon   *string `json:"amazon"`
	Flipkart *string `json:"flipkart"`
	Meesho   *string `json:"meesho"`
	Shopify  *string `json:"shopify"`
	Myntra   *string `json:"myntra"`
	Ajio     *string `json:"ajio"`
	Alibaba  *string `json:"alibaba"`
	Snapdeal *string `json:"snapdeal"`
}

func (u AdminSettingUpdate) links() map[model.Vendor]*string {
	return map[model.Vendor]*string{
		model.VendorAmazon:   u.Amazon,
		model.VendorFlipkart: u.Flipkart,
		model.VendorMeesho:   u.Meesho,
		model.VendorShopify:  u.Shopify,
		model.VendorMyntra:   u.Myntra,
		model.VendorAjio:     u.Ajio,
		model.VendorAlibaba:  u.Alibaba,
		model.VendorSnapdeal: u.Snapdeal,
	}
}

// Set assigns one vendor's link by name.
func (u *AdminSettingUpdate) Set(vendor model.Vendor, link string) bool {
	var f **string
	switch vendor {
	case model.VendorAmazon:
		f = &u.Amazon
	case model.VendorFlipkart:
		f = &u.Flipkart
	case model.VendorMeesho:
		f = &u.Meesho
	case model.VendorShopify:
		f = &u.Shopify
	case model.VendorMyntra:
		f = &u.Myntra
	case model.VendorAjio:
		f = &u.Ajio
	case model.VendorAlibaba:
		f = &u.Alibaba
	case model.VendorSnapdeal:
		f = &u.Snapdeal
	default:
		return false
	}
	*f = &link
	return true
}

type VendorLinkService interface {
	Resolve(ctx context.Context, vendor string) (string, error)
	Get(ctx context.Context) (*model.AdminSetting, error)
	Save(ctx context.Context, in AdminSettingUpdate) (*model.AdminSetting, error)
}

type vendorLinkService struct{ db *gorm.DB }

func NewVendorLinkService(db *gorm.DB) VendorLinkService { return &vendorLinkService{db: db} }

// current loads the oldest settings row. found is false when none exists.
func (s *vendorLinkService) current(ctx context.Context) (st model.AdminSetting, found bool, err error) {
	err = s.db.WithContext(ctx).Order("created_at asc").Order("id asc").Take(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return st, false, nil
	}
	if err != nil {
		return st, false, storageErr("load admin settings", err)
	}
	return st, true, nil
}

func (s *vendorLinkService) Resolve(ctx context.Context, vendor string) (string, error) {
	st, found, err := s.current(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrLinkNotConfigured
	}
	link := st.Link(vendor)
	if link == "" {
		return "", ErrLinkNotConfigured
	}
	return link, nil
}

func (s *vendorLinkService) Get(ctx context.Context) (*model.AdminSetting, error) {
	st, _, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *vendorLinkService) Save(ctx context.Context, in AdminSettingUpdate) (*model.AdminSetting, error) {
	links := in.links()
	for vendor, link := range links {
		if link != nil && *link != "" && !validLink(*link) {
			return nil, invalid("%s: not an http(s) URL", vendor)
		}
	}

	st, found, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		for vendor, link := range links {
			if link != nil {
				*st.Field(vendor) = link
			}
		}
		if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
			return nil, storageErr("create admin settings", err)
		}
		return &st, nil
	}

	cols := map[string]any{}
	for vendor, link := range links {
		if link != nil {
			cols[string(vendor)] = *link
		}
	}
	if len(cols) > 0 {
		if err := s.db.WithContext(ctx).Model(&st).Updates(cols).Error; err != nil {
			return nil, storageErr("update admin settings", err)
		}
	}
	return s.Get(ctx)
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
