package controllers

import (
	"errors"
	"net/http"

	"github.com/rdg11/recipe-app-backend/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto statuses. Anything unrecognized is a
// 500 with the message passed through for client-side display.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGenerationTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
