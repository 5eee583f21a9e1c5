package models

// CreateTaskRequest is the request body for POST /api/v1/tasks/:listId
type CreateTaskRequest struct {
	Name     string `json:"name" binding:"required"`
	Status   string `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' Completed"`
	Priority string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// UpdateTaskRequest is the request body for PUT /api/v1/tasks/:listId/:id.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Status   *string `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' Completed"`
	Priority *string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}
