package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID                string     `json:"id"` // UUID
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	PasswordHash      *string    `json:"-"` // Nil for OAuth-only accounts
	GoogleID          *string    `json:"-"`
	ResetOTP          *string    `json:"-"`
	ResetOTPExpiresAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
