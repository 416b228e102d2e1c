package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type ProductInput struct {
	AffiliateID      string     `json:"affiliate_id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	Price            float64    `json:"price"`
	Margin           *float64   `json:"margin"`
	Images           []string   `json:"images"`
	Vendor           string     `json:"vendor"`
	AffiliateLink    string     `json:"affiliate_link"`
	Category         *string    `json:"category"`
	Tags             []string   `json:"tags"`
	Rating           float64    `json:"rating"`
	HotDeal          bool       `json:"hot_deal"`
	HotDealExpiresAt *time.Time `json:"hot_deal_expires_at"`
	Featured         bool       `json:"featured"`
}

// ProductUpdate lists the fields a product owner may change. Owner and
// counters are not among them.
type ProductUpdate struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Price              *float64   `json:"price"`
	Margin             *float64   `json:"margin"`
	Images             *[]string  `json:"images"`
	Vendor             *string    `json:"vendor"`
	AffiliateLink      *string    `json:"affiliate_link"`
	Category           *string    `json:"category"`
	Tags               *[]string  `json:"tags"`
	Rating             *float64   `json:"rating"`
	HotDeal            *bool      `json:"hot_deal"`
	HotDealExpiresAt   *time.Time `json:"hot_deal_expires_at"`
	ClearHotDealExpiry bool       `json:"clear_hot_deal_expires_at"`
	Featured           *bool      `json:"featured"`
}

type ProductQuery struct {
	Q           string
	Category    string
	Vendor      string
	AffiliateID string
	HotOnly     bool
	// Now defaults to the current time.
	Now time.Time
}

type ProductService interface {
	List(ctx context.Context, q ProductQuery) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, in ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct{ db *gorm.DB }

func NewProductService(db *gorm.DB) ProductService { return &productService{db: db} }

func (s *productService) List(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	tx := s.db.WithContext(ctx)
	if q.Q != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Q)+"%")
	}
	if q.Category != "" {
		tx = tx.Where("LOWER(category) = ?", strings.ToLower(q.Category))
	}
	if q.Vendor != "" {
		tx = tx.Where("LOWER(vendor) = ?", strings.ToLower(q.Vendor))
	}
	if q.AffiliateID != "" {
		tx = tx.Where("affiliate_id = ?", q.AffiliateID)
	}
	if q.HotOnly {
		now := q.Now
		if now.IsZero() {
			now = time.Now()
		}
		tx = tx.Scopes(HotDeals(now))
	}
	var ps []model.Product
	err := tx.Order("updated_at desc").Find(&ps).Error
	return ps, storageErr("list products", err)
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *productService) load(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, storageErr("load product", err)
	}
	return &p, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	vendor, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	p := model.Product{
		AffiliateID:      in.AffiliateID,
		Title:            in.Title,
		Description:      in.Description,
		Price:            in.Price,
		Margin:           in.Margin,
		Images:           datatypes.JSONSlice[string](nonNil(in.Images)),
		Vendor:           vendor,
		AffiliateLink:    in.AffiliateLink,
		Category:         in.Category,
		Tags:             datatypes.JSONSlice[string](nonNil(in.Tags)),
		Rating:           in.Rating,
		HotDeal:          in.HotDeal,
		HotDealExpiresAt: utcPtr(in.HotDealExpiresAt),
		Featured:         in.Featured,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, storageErr("create product", err)
	}
	return s.load(ctx, p.ID)
}

func validateProduct(in ProductInput) (model.Vendor, error) {
	if strings.TrimSpace(in.AffiliateID) == "" {
		return "", invalid("affiliate_id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", invalid("title is required")
	}
	if in.Price < 0 {
		return "", invalid("price must be >= 0")
	}
	if in.Margin != nil && *in.Margin < 0 {
		return "", invalid("margin must be >= 0")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return "", invalid("rating must be between 0 and 5")
	}
	vendor, ok := model.ParseVendor(in.Vendor)
	if !ok {
		return "", invalid("unknown vendor %q", in.Vendor)
	}
	if !validLink(in.AffiliateLink) {
		return "", invalid("affiliate_link must be an http(s) URL")
	}
	for _, img := range in.Images {
		if !validLink(img) {
			return "", invalid("image %q is not an http(s) URL", img)
		}
	}
	return vendor, nil
}

func (s *productService) Update(ctx context.Context, id string, in ProductUpdate) (*model.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	cols, err := productColumns(in)
	if err != nil {
		return nil, err
	}
	cols["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, storageErr("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return s.load(ctx, id)
}

func productColumns(in ProductUpdate) (map[string]any, error) {
	cols := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, invalid("title must not be empty")
		}
		cols["title"] = *in.Title
	}
	if in.Description != nil {
		cols["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, invalid("price must be >= 0")
		}
		cols["price"] = *in.Price
	}
	if in.Margin != nil {
		if *in.Margin < 0 {
			return nil, invalid("margin must be >= 0")
		}
		cols["margin"] = *in.Margin
	}
	if in.Images != nil {
		for _, img := range *in.Images {
			if !validLink(img) {
				return nil, invalid("image %q is not an http(s) URL", img)
			}
		}
		cols["images"] = datatypes.JSONSlice[string](nonNil(*in.Images))
	}
	if in.Vendor != nil {
		v, ok := model.ParseVendor(*in.Vendor)
		if !ok {
			return nil, invalid("unknown vendor %q", *in.Vendor)
		}
		cols["vendor"] = v
	}
	if in.AffiliateLink != nil {
		if !validLink(*in.AffiliateLink) {
			return nil, invalid("affiliate_link must be an http(s) URL")
		}
		cols["affiliate_link"] = *in.AffiliateLink
	}
	if in.Category != nil {
		cols["category"] = *in.Category
	}
	if in.Tags != nil {
		cols["tags"] = datatypes.JSONSlice[string](nonNil(*in.Tags))
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return nil, invalid("rating must be between 0 and 5")
		}
		cols["rating"] = *in.Rating
	}
	if in.HotDeal != nil {
		cols["hot_deal"] = *in.HotDeal
	}
	switch {
	case in.ClearHotDealExpiry:
		cols["hot_deal_expires_at"] = gorm.Expr("NULL")
	case in.HotDealExpiresAt != nil:
		cols["hot_deal_expires_at"] = in.HotDealExpiresAt.UTC()
	}
	if in.Featured != nil {
		cols["featured"] = *in.Featured
	}
	return cols, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return storageErr("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
