package service

import "errors"

// Errors surfaced to controllers and translated to HTTP statuses
var (
	ErrForbidden          = errors.New("you do not have access to this list")
	ErrShareWithOwner     = errors.New("cannot share a list with its owner")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoResetRequest     = errors.New("no password reset request found")
	ErrOTPExpired         = errors.New("OTP has expired")
	ErrOTPInvalid         = errors.New("invalid OTP")
	ErrMailDelivery       = errors.New("failed to send password reset email")
)
