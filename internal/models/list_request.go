package models

// CreateListRequest is the request body for POST /api/v1/lists
type CreateListRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateListRequest is the request body for PUT /api/v1/lists/:id
type UpdateListRequest struct {
	Title string `json:"title" binding:"required"`
}

// ShareListRequest is the request body for POST /api/v1/lists/:id/share
type ShareListRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Access string `json:"access" binding:"required,oneof=Edit View"`
}
