package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
)

// fail writes err as {"detail": ...} with the matching status and aborts.
func fail(c *gin.Context, err error) {
	var se *service.StorageError
	switch {
	case errors.Is(err, service.ErrInvalidID):
		detail(c, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, service.ErrProductNotFound):
		detail(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrUserNotFound):
		detail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrLinkNotAvailable), errors.Is(err, service.ErrLinkNotConfigured):
		detail(c, http.StatusNotFound, "Link not available yet")
	case errors.Is(err, service.ErrAccountExists):
		detail(c, http.StatusBadRequest, "Account exists, please login instead.")
	case errors.Is(err, service.ErrInvalidCredentials):
		detail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrValidation):
		detail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &se):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		detail(c, http.StatusInternalServerError, "Storage error")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// bindStrict decodes the JSON body and rejects fields the target does not
// declare.
func bindStrict(c *gin.Context, v any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return false
	}
	return true
}

func items[T any](c *gin.Context, v []T) {
	if v == nil {
		v = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"items": v})
}
