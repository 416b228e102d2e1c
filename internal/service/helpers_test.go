package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := store.Open(store.Options{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(db) })
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p model.Product) model.Product {
	t.Helper()
	if p.AffiliateID == "" {
		p.AffiliateID = "aff-1"
	}
	if p.Title == "" {
		p.Title = "Wireless Earbuds"
	}
	if p.Vendor == "" {
		p.Vendor = model.VendorAmazon
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func strPtr(s string) *string { return &s }
