package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive-be/internal/access"
	"taskhive-be/internal/repository"
)

// RequireListEdit authorizes the Edit capability on the list named by the
// given route parameter. Must run after AuthMiddleware. A missing list is
// a 404; an existing list the caller may not edit is a 403.
func RequireListEdit(listRepo repository.ListRepository, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		listID := c.Param(param)
		if listID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		list, err := listRepo.FindByID(ctx, listID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking list access"})
			}
			c.Abort()
			return
		}

		shares, err := listRepo.FindShares(ctx, listID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking list access"})
			c.Abort()
			return
		}

		if !access.CanAccess(UserID(c), list, shares, access.Edit) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have edit access to this list"})
			c.Abort()
			return
		}

		c.Next()
	}
}
