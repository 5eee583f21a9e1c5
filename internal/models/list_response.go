package models

import (
	"time"

	"taskhive-be/internal/entities"
)

// ShareResponse is one share entry with the grantee resolved to display fields
type ShareResponse struct {
	User   UserSummary `json:"user"`
	Access string      `json:"access"`
}

// ListResponse is the enriched list view: owner and share entries resolved
// to display fields, task references resolved to full task records.
type ListResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Owner      UserSummary      `json:"owner"`
	SharedWith []ShareResponse  `json:"shared_with"`
	Tasks      []*entities.Task `json:"tasks"`
	CreatedAt  time.Time        `json:"created_at"`
}
