package models

// RegisterRequest is the request body for POST /api/v1/auth/register
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the request body for POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetRequest is the request body for POST /api/v1/auth/password-reset/request
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest is the request body for POST /api/v1/auth/password-reset/verify
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// ResetPasswordRequest is the request body for POST /api/v1/auth/password-reset
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
