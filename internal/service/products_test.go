package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

func validProduct() ProductInput {
	return ProductInput{
		AffiliateID:   "aff-1",
		Title:         "Running Shoes",
		Price:         49.99,
		Vendor:        "Myntra",
		AffiliateLink: "https://myntra.example/p/9",
		Images:        []string{"https://cdn.example/1.jpg"},
		Tags:          []string{"sport"},
		Rating:        4.5,
	}
}

func TestCreateProduct(t *testing.T) {
	svc := NewProductService(newTestDB(t))

	p, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, model.VendorMyntra, p.Vendor)
	assert.Equal(t, []string{"https://cdn.example/1.jpg"}, []string(p.Images))
	assert.Equal(t, []string{"sport"}, []string(p.Tags))
	assert.Zero(t, p.Clicks)
	assert.Zero(t, p.Orders)
}

func TestCreateProductValidation(t *testing.T) {
	cases := map[string]func(*ProductInput){
		"unknown vendor":  func(in *ProductInput) { in.Vendor = "ebay" },
		"negative price":  func(in *ProductInput) { in.Price = -1 },
		"rating too high": func(in *ProductInput) { in.Rating = 5.5 },
		"relative link":   func(in *ProductInput) { in.AffiliateLink = "/p/9" },
		"missing title":   func(in *ProductInput) { in.Title = " " },
		"bad image":       func(in *ProductInput) { in.Images = []string{"not a url"} },
		"negative margin": func(in *ProductInput) { m := -0.5; in.Margin = &m },
	}
	svc := NewProductService(newTestDB(t))
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validProduct()
			mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newTestDB(t))
	p, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	price := 39.0
	hot := true
	expires := time.Now().Add(24 * time.Hour)
	got, err := svc.Update(ctx, p.ID, ProductUpdate{Price: &price, HotDeal: &hot, HotDealExpiresAt: &expires})
	require.NoError(t, err)
	assert.Equal(t, 39.0, got.Price)
	assert.True(t, got.HotDeal)
	require.NotNil(t, got.HotDealExpiresAt)
	assert.WithinDuration(t, expires, *got.HotDealExpiresAt, time.Second)
	assert.Equal(t, "Running Shoes", got.Title)

	got, err = svc.Update(ctx, p.ID, ProductUpdate{ClearHotDealExpiry: true})
	require.NoError(t, err)
	assert.Nil(t, got.HotDealExpiresAt)

	bad := "ebay"
	_, err = svc.Update(ctx, p.ID, ProductUpdate{Vendor: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, "3f1c2b9a-8a44-4c55-9f0e-1d2c3b4a5e6f", ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.Update(ctx, "123", ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestListProductFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedProduct(t, db, model.Product{Title: "Blue Kurta", Vendor: model.VendorMyntra, Category: strPtr("Fashion"), AffiliateID: "aff-1"})
	seedProduct(t, db, model.Product{Title: "Phone Case", Vendor: model.VendorAmazon, Category: strPtr("Mobiles"), AffiliateID: "aff-2"})
	svc := NewProductService(db)

	ps, err := svc.List(ctx, ProductQuery{Q: "kurta"})
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Blue Kurta", ps[0].Title)

	ps, err = svc.List(ctx, ProductQuery{Category: "mobiles"})
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Phone Case", ps[0].Title)

	ps, err = svc.List(ctx, ProductQuery{Vendor: "MYNTRA"})
	require.NoError(t, err)
	assert.Len(t, ps, 1)

	ps, err = svc.List(ctx, ProductQuery{AffiliateID: "aff-2"})
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newTestDB(t))
	p, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrProductNotFound)
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
