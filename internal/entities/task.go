package entities

import "time"

// Task statuses
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task represents a task entity in the database.
// A task belongs to exactly one list via list_id; ordering within the
// list is by (position, created_at).
type Task struct {
	ID        string    `json:"id"` // UUID
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidStatus reports whether s is one of the allowed task statuses.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the allowed task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidAccess reports whether a is a valid share access level.
func ValidAccess(a string) bool {
	return a == AccessEdit || a == AccessView
}
