package handlers

import (
	"errors"
	"net/http"

	"milk_delivery/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. Unknown errors
// stay opaque to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.Invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.NotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.Conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.Forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.Unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
