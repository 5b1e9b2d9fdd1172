package auth

import "errors"

// Service errors
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoValidCode        = errors.New("no valid verification code found")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrNoEmail            = errors.New("user has no email address")
	ErrNoPhone            = errors.New("user has no phone number")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain a special character")
)
