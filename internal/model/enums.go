package model

import "strings"

type Vendor string

const (
	VendorAmazon   Vendor = "amazon"
	VendorFlipkart Vendor = "flipkart"
	VendorMeesho   Vendor = "meesho"
	VendorShopify  Vendor = "shopify"
	VendorMyntra   Vendor = "myntra"
	VendorAjio     Vendor = "ajio"
	VendorAlibaba  Vendor = "alibaba"
	VendorSnapdeal Vendor = "snapdeal"
)

// Vendors lists every marketplace in display order.
var Vendors = []Vendor{
	VendorAmazon, VendorFlipkart, VendorMeesho, VendorShopify,
	VendorMyntra, VendorAjio, VendorAlibaba, VendorSnapdeal,
}

func (v Vendor) Valid() bool {
	for _, known := range Vendors {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVendor is case-insensitive; ok is false for unknown names.
func ParseVendor(s string) (Vendor, bool) {
	v := Vendor(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

type ClickTarget string

const (
	TargetProduct    ClickTarget = "product"
	TargetVendorLogo ClickTarget = "vendor_logo"
)

func (t ClickTarget) Valid() bool {
	return t == TargetProduct || t == TargetVendorLogo
}

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleAffiliate Role = "affiliate"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleAffiliate || r == RoleAdmin
}

// SignupRole maps a requested role to one allowed at self-registration.
// Anything other than buyer or affiliate (admin included) becomes buyer.
func SignupRole(s string) Role {
	switch Role(s) {
	case RoleAffiliate:
		return RoleAffiliate
	default:
		return RoleBuyer
	}
}

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderRedirected     OrderStatus = "redirected"
	OrderPlacedOnVendor OrderStatus = "placed_on_vendor"
	OrderCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderRedirected, OrderPlacedOnVendor, OrderCancelled:
		return true
	}
	return false
}
