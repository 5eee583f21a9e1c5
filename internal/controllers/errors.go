package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive-be/internal/repository"
	"taskhive-be/internal/service"
)

// handleServiceError translates service and repository errors into HTTP
// responses. No error crosses a handler untranslated.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShareWithOwner),
		errors.Is(err, service.ErrNoResetRequest),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMailDelivery):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrMailDelivery.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
