package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type ProductHTTP struct {
	S service.ProductService
}

func NewProductHTTP(s service.ProductService) *ProductHTTP { return &ProductHTTP{S: s} }

func (h *ProductHTTP) List(c *gin.Context) {
	hotOnly, _ := strconv.ParseBool(c.Query("hot_only"))
	ps, err := h.S.List(c.Request.Context(), service.ProductQuery{
		Q:           c.Query("q"),
		Category:    c.Query("category"),
		Vendor:      c.Query("vendor"),
		AffiliateID: c.Query("affiliate_id"),
		HotOnly:     hotOnly,
	})
	if err != nil {
		fail(c, err)
		return
	}
	items(c, ps)
}

func (h *ProductHTTP) Get(c *gin.Context) {
	p, err := h.S.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Create(c *gin.Context) {
	var in service.ProductInput
	if !bindStrict(c, &in) {
		return
	}
	p, err := h.S.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Update(c *gin.Context) {
	var in service.ProductUpdate
	if !bindStrict(c, &in) {
		return
	}
	p, err := h.S.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
