package entities

import "time"

// Access levels a list can be shared with
const (
	AccessEdit = "Edit"
	AccessView = "View"
)

// List represents a to-do list entity in the database
type List struct {
	ID        string    `json:"id"` // UUID
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"` // UUID, immutable after creation
	CreatedAt time.Time `json:"created_at"`
}

// ShareEntry records one grant of non-owner access to a list.
// At most one entry exists per (list, user) pair; the owner never appears here.
type ShareEntry struct {
	ListID string `json:"list_id"`
	UserID string `json:"user_id"`
	Access string `json:"access"` // Edit or View
}
