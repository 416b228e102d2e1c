package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type AdminHTTP struct {
	Links  service.VendorLinkService
	Stats  service.StatsService
	Clicks service.ClickRecorder
}

func NewAdminHTTP(l service.VendorLinkService, s service.StatsService, c service.ClickRecorder) *AdminHTTP {
	return &AdminHTTP{Links: l, Stats: s, Clicks: c}
}

// GetSettings returns {} until the settings row has been saved once.
func (h *AdminHTTP) GetSettings(c *gin.Context) {
	st, err := h.Links.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if st.ID == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *AdminHTTP) SaveSettings(c *gin.Context) {
	var in service.AdminSettingUpdate
	if !bindStrict(c, &in) {
		return
	}
	st, err := h.Links.Save(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *AdminHTTP) GetStats(c *gin.Context) {
	st, err := h.Stats.Stats(c.Request.Context(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *AdminHTTP) ListClicks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := service.ClickQuery{
		Target:      model.ClickTarget(c.Query("target")),
		ProductID:   c.Query("product_id"),
		AffiliateID: c.Query("affiliate_id"),
		Vendor:      c.Query("vendor"),
		UserID:      c.Query("user_id"),
		Limit:       limit,
	}
	clicks, err := h.Clicks.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	total, err := h.Clicks.Count(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	if clicks == nil {
		clicks = []model.Click{}
	}
	c.JSON(http.StatusOK, gin.H{"items": clicks, "total": total})
}
