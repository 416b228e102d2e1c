package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

// AuthHTTP serves signup, login and the user directory. Login only checks
// the password; there is no session to carry afterwards.
type AuthHTTP struct {
	Auth  service.AuthService
	Users service.UserService
}

func NewAuthHTTP(a service.AuthService, u service.UserService) *AuthHTTP {
	return &AuthHTTP{Auth: a, Users: u}
}

func (h *AuthHTTP) Signup(c *gin.Context) {
	var in service.SignupInput
	if !bindStrict(c, &in) {
		return
	}
	u, err := h.Auth.Signup(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHTTP) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	u, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHTTP) UpdateUser(c *gin.Context) {
	var in service.UserUpdate
	if !bindStrict(c, &in) {
		return
	}
	u, err := h.Users.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHTTP) ListUsers(c *gin.Context) {
	us, err := h.Users.List(c.Request.Context(), c.Query("role"), c.Query("email"))
	if err != nil {
		fail(c, err)
		return
	}
	items(c, us)
}
