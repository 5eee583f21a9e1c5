package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive-be/internal/models"
	"taskhive-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// Create handles POST /api/v1/tasks/:listId (edit access enforced by
// middleware)
func (tc *TaskController) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	task, err := tc.taskService.Create(c.Request.Context(), c.Param("listId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/v1/tasks/:listId/:id (edit access enforced by
// middleware)
func (tc *TaskController) Update(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	task, err := tc.taskService.Update(c.Request.Context(), c.Param("listId"), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/:listId/:id (edit access enforced by
// middleware)
func (tc *TaskController) Delete(c *gin.Context) {
	if err := tc.taskService.Delete(c.Request.Context(), c.Param("listId"), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
