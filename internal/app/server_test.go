package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/store"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter(t *testing.T, rdb *redis.Client, limit int) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := store.Open(store.Options{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(db) })
	return NewRouter(Deps{DB: db, Redis: rdb, RateLimit: limit}), db
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "shopearn-test/1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func TestVendorRedirect(t *testing.T) {
	r, db := newTestRouter(t, nil, 0)

	w := do(r, http.MethodGet, "/r/amazon", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Link not available yet", detailOf(t, w))

	w = do(r, http.MethodPost, "/admin/settings", map[string]string{"amazon": "https://amazon.example/?tag=se"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/r/amazon?user_id=u-1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://amazon.example/?tag=se", w.Header().Get("Location"))

	var c model.Click
	require.NoError(t, db.Take(&c).Error)
	assert.Equal(t, model.TargetVendorLogo, c.Target)
	assert.Equal(t, "u-1", *c.UserID)
	assert.Equal(t, "shopearn-test/1.0", *c.UserAgent)
	assert.NotNil(t, c.IP)
}

func TestProductRedirect(t *testing.T) {
	r, db := newTestRouter(t, nil, 0)

	w := do(r, http.MethodPost, "/products", map[string]any{
		"affiliate_id":   "aff-1",
		"title":          "Smart Watch",
		"price":          120,
		"vendor":         "flipkart",
		"affiliate_link": "https://flipkart.example/p/watch",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	for i := 0; i < 3; i++ {
		w = do(r, http.MethodGet, "/r/product/"+p.ID, nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://flipkart.example/p/watch", w.Header().Get("Location"))
	}

	var got model.Product
	require.NoError(t, db.Where("id = ?", p.ID).Take(&got).Error)
	assert.EqualValues(t, 3, got.Clicks)

	w = do(r, http.MethodGet, "/r/product/not-an-object-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", detailOf(t, w))

	w = do(r, http.MethodGet, "/r/product/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", detailOf(t, w))

	w = do(r, http.MethodGet, "/admin/clicks?target=product", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var clicks struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clicks))
	assert.Equal(t, 3, clicks.Total)
}

func TestProductUpdateRejectsUnknownFields(t *testing.T) {
	r, _ := newTestRouter(t, nil, 0)

	w := do(r, http.MethodPut, "/products/"+uuid.NewString(), map[string]any{"clicks": 1000})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/admin/settings", map[string]any{"ebay": "https://ebay.example"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHotOnlyListing(t *testing.T) {
	r, db := newTestRouter(t, nil, 0)
	require.NoError(t, db.Create(&[]model.Product{
		{AffiliateID: "a", Title: "Hot", Vendor: model.VendorAjio, HotDeal: true},
		{AffiliateID: "a", Title: "Cold", Vendor: model.VendorAjio},
	}).Error)

	w := do(r, http.MethodGet, "/products?hot_only=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Items []model.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Hot", out.Items[0].Title)
}

func TestSignupLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t, nil, 0)
	in := map[string]any{"name": "Kiran", "email": "kiran@example.com", "password": "pw", "role": "admin"}

	w := do(r, http.MethodPost, "/auth/signup", in)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), `"role":"buyer"`)

	w = do(r, http.MethodPost, "/auth/signup", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/auth/login", map[string]string{"email": "kiran@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", detailOf(t, w))

	w = do(r, http.MethodPost, "/auth/login", map[string]string{"email": "kiran@example.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedirectRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r, _ := newTestRouter(t, rdb, 2)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodGet, "/r/amazon", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	w := do(r, http.MethodGet, "/r/amazon", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", detailOf(t, w))

	// other routes are not limited
	w = do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
