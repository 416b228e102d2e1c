package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type RedirectHTTP struct {
	S service.RedirectService
}

func NewRedirectHTTP(s service.RedirectService) *RedirectHTTP { return &RedirectHTTP{S: s} }

func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

// Vendor handles GET /r/:vendor.
func (h *RedirectHTTP) Vendor(c *gin.Context) {
	url, err := h.S.ByVendor(c.Request.Context(), c.Param("vendor"), c.Query("user_id"), requestMeta(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Product handles GET /r/product/:product_id. The stored affiliate link is
// used as-is, even when empty.
func (h *RedirectHTTP) Product(c *gin.Context) {
	url, err := h.S.ByProduct(c.Request.Context(), c.Param("product_id"), c.Query("user_id"), requestMeta(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
