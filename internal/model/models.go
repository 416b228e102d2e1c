package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type Product struct {
	ID               string                      `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	AffiliateID      string                      `gorm:"index;not null" json:"affiliate_id"`
	Title            string                      `gorm:"not null" json:"title"`
	Description      *string                     `json:"description"`
	Price            float64                     `json:"price"`
	Margin           *float64                    `json:"margin"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	Vendor           Vendor                      `gorm:"type:varchar(32);index" json:"vendor"`
	AffiliateLink    string                      `json:"affiliate_link"`
	Category         *string                     `json:"category"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	Rating           float64                     `json:"rating"`
	HotDeal          bool                        `gorm:"index" json:"hot_deal"`
	HotDealExpiresAt *time.Time                  `json:"hot_deal_expires_at"`
	Featured         bool                        `json:"featured"`
	Clicks           int64                       `gorm:"not null;default:0" json:"clicks"`
	Orders           int64                       `gorm:"not null;default:0" json:"orders"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }

// Click is append-only; nothing updates or deletes it once written.
type Click struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Target      ClickTarget `gorm:"type:varchar(16);not null;index" json:"target"`
	ProductID   *string     `gorm:"index" json:"product_id"`
	AffiliateID *string     `gorm:"index" json:"affiliate_id"`
	Vendor      *string     `json:"vendor"`
	UserID      *string     `gorm:"index" json:"user_id"`
	IP          *string     `json:"ip"`
	UserAgent   *string     `json:"user_agent"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (c *Click) BeforeCreate(*gorm.DB) error { assignID(&c.ID); return nil }

// AdminSetting is a singleton row mapping each vendor to its affiliate URL.
type AdminSetting struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Amazon    *string   `json:"amazon"`
	Flipkart  *string   `json:"flipkart"`
	Meesho    *string   `json:"meesho"`
	Shopify   *string   `json:"shopify"`
	Myntra    *string   `json:"myntra"`
	Ajio      *string   `json:"ajio"`
	Alibaba   *string   `json:"alibaba"`
	Snapdeal  *string   `json:"snapdeal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AdminSetting) BeforeCreate(*gorm.DB) error { assignID(&s.ID); return nil }

// Field returns the column holding the URL for v, or nil for unknown vendors.
func (s *AdminSetting) Field(v Vendor) **string {
	switch v {
	case VendorAmazon:
		return &s.Amazon
	case VendorFlipkart:
		return &s.Flipkart
	case VendorMeesho:
		return &s.Meesho
	case VendorShopify:
		return &s.Shopify
	case VendorMyntra:
		return &s.Myntra
	case VendorAjio:
		return &s.Ajio
	case VendorAlibaba:
		return &s.Alibaba
	case VendorSnapdeal:
		return &s.Snapdeal
	}
	return nil
}

// Link returns the configured URL for vendor, "" when unset or unknown.
func (s *AdminSetting) Link(vendor string) string {
	f := s.Field(Vendor(vendor))
	if f == nil || *f == nil {
		return ""
	}
	return **f
}

type Order struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserID      string      `gorm:"index;not null" json:"user_id"`
	ProductID   string      `gorm:"index;not null" json:"product_id"`
	AffiliateID *string     `gorm:"index" json:"affiliate_id"`
	Status      OrderStatus `gorm:"type:varchar(32);not null" json:"status"`
	VendorURL   *string     `json:"vendor_url"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error { assignID(&o.ID); return nil }

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Role         Role      `gorm:"type:varchar(16);index;not null" json:"role"`
	Phone        *string   `json:"phone"`
	Age          *int      `json:"age"`
	Gender       *Gender   `gorm:"type:varchar(32)" json:"gender"`
	PhotoURL     *string   `json:"photo_url"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	AdFree       bool      `gorm:"not null;default:false" json:"ad_free"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error { assignID(&u.ID); return nil }

type Subscription struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	TxID      string    `gorm:"not null" json:"tx_id"`
	Amount    float64   `json:"amount"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (s *Subscription) BeforeCreate(*gorm.DB) error { assignID(&s.ID); return nil }

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Product{}, &Click{}, &Order{}, &AdminSetting{}, &Subscription{},
	}
}
