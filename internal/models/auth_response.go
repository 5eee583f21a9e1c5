package models

import "time"

// UserSummary is the public view of a user (no credentials)
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token     string      `json:"token"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// MessageResponse is a generic success message body
type MessageResponse struct {
	Message string `json:"message"`
}
