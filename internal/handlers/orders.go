package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type OrderHTTP struct {
	S service.OrderService
}

func NewOrderHTTP(s service.OrderService) *OrderHTTP { return &OrderHTTP{S: s} }

func (h *OrderHTTP) Create(c *gin.Context) {
	var in struct {
		UserID    string `json:"user_id"`
		ProductID string `json:"product_id"`
	}
	if !bindStrict(c, &in) {
		return
	}
	o, err := h.S.Create(c.Request.Context(), in.UserID, in.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) List(c *gin.Context) {
	orders, err := h.S.List(c.Request.Context(), c.Query("user_id"), c.Query("affiliate_id"))
	if err != nil {
		fail(c, err)
		return
	}
	items(c, orders)
}
