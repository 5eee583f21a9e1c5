package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive-be/internal/middleware"
	"taskhive-be/internal/models"
	"taskhive-be/internal/service"
)

type ListController struct {
	listService service.ListService
}

func NewListController(listService service.ListService) *ListController {
	return &ListController{
		listService: listService,
	}
}

// Create handles POST /api/v1/lists
func (lc *ListController) Create(c *gin.Context) {
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	list, err := lc.listService.Create(c.Request.Context(), middleware.UserID(c), req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// GetAll handles GET /api/v1/lists - every list the caller owns or is
// shared on
func (lc *ListController) GetAll(c *gin.Context) {
	lists, err := lc.listService.GetAll(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// Get handles GET /api/v1/lists/:id
func (lc *ListController) Get(c *gin.Context) {
	list, err := lc.listService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Update handles PUT /api/v1/lists/:id (edit access enforced by middleware)
func (lc *ListController) Update(c *gin.Context) {
	var req models.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	list, err := lc.listService.UpdateTitle(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete handles DELETE /api/v1/lists/:id (owner-only)
func (lc *ListController) Delete(c *gin.Context) {
	err := lc.listService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}

// Share handles POST /api/v1/lists/:id/share (edit access enforced by
// middleware)
func (lc *ListController) Share(c *gin.Context) {
	var req models.ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	list, err := lc.listService.Share(c.Request.Context(), c.Param("id"), req.Email, req.Access)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// RemoveShare handles DELETE /api/v1/lists/:id/share?userId= (edit access
// enforced by middleware)
func (lc *ListController) RemoveShare(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	list, err := lc.listService.RemoveShare(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
