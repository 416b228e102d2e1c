package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

type SubscriptionHTTP struct {
	S service.SubscriptionService
}

func NewSubscriptionHTTP(s service.SubscriptionService) *SubscriptionHTTP {
	return &SubscriptionHTTP{S: s}
}

func (h *SubscriptionHTTP) Create(c *gin.Context) {
	var in struct {
		UserID string  `json:"user_id"`
		TxID   string  `json:"tx_id"`
		Amount float64 `json:"amount"`
	}
	if !bindStrict(c, &in) {
		return
	}
	sub, err := h.S.Create(c.Request.Context(), in.UserID, in.TxID, in.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "expires_at": sub.ExpiresAt.Format(time.RFC3339)})
}

func (h *SubscriptionHTTP) List(c *gin.Context) {
	subs, err := h.S.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	items(c, subs)
}
